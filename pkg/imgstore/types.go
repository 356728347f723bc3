package imgstore

import (
	"encoding/hex"
	"fmt"
	"io"
)

// Resolution selects one of the three stored variants of an image.
type Resolution int

// Variant codes, in slot array order.
const (
	ResThumb Resolution = iota
	ResSmall
	ResOrig

	nbRes = 3
)

// String returns the short variant name used in output filenames.
func (r Resolution) String() string {
	switch r {
	case ResThumb:
		return "thumb"
	case ResSmall:
		return "small"
	case ResOrig:
		return "orig"
	default:
		return fmt.Sprintf("resolution(%d)", int(r))
	}
}

func (r Resolution) valid() bool {
	return r >= ResThumb && r <= ResOrig
}

// ParseResolution maps a resolution name to its code. Accepted names are
// "thumb", "thumbnail", "small", "orig" and "original"; anything else is
// ErrResolutions.
func ParseResolution(name string) (Resolution, error) {
	switch name {
	case "thumb", "thumbnail":
		return ResThumb, nil
	case "small":
		return ResSmall, nil
	case "orig", "original":
		return ResOrig, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrResolutions, name)
	}
}

// Header is the fixed configuration record at the start of every store file.
type Header struct {
	// Name is the format tag; always the magic string on a valid store.
	Name string

	// Version counts mutations; incremented on insert and delete.
	Version uint32

	// NumFiles is the count of valid slots.
	NumFiles uint32

	// MaxFiles is the immutable slot-table capacity.
	MaxFiles uint32

	// Resized holds the maximum width,height box per reduced variant:
	// Resized[2*r] x Resized[2*r+1] for r in {ResThumb, ResSmall}.
	Resized [4]uint16

	// Reserved padding, kept for a stable record size.
	Unused32 uint32
	Unused64 uint64
}

// ThumbRes returns the maximum thumbnail box as width, height.
func (h *Header) ThumbRes() (uint16, uint16) {
	return h.Resized[2*ResThumb], h.Resized[2*ResThumb+1]
}

// SmallRes returns the maximum small-variant box as width, height.
func (h *Header) SmallRes() (uint16, uint16) {
	return h.Resized[2*ResSmall], h.Resized[2*ResSmall+1]
}

// maxRes returns the variant box for the given reduced resolution.
func (h *Header) maxRes(r Resolution) (uint16, uint16) {
	return h.Resized[2*r], h.Resized[2*r+1]
}

// WriteTo prints the header in the store's human listing format.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, line := range []string{
		"*****************************************\n",
		"**********IMGSTORE HEADER START**********\n",
		fmt.Sprintf("TYPE: %31s\n", h.Name),
		fmt.Sprintf("VERSION: %d\n", h.Version),
		fmt.Sprintf("IMAGE COUNT: %d\t\tMAX IMAGES: %d\n", h.NumFiles, h.MaxFiles),
		fmt.Sprintf("THUMBNAIL: %d x %d\tSMALL: %d x %d\n",
			h.Resized[2*ResThumb], h.Resized[2*ResThumb+1],
			h.Resized[2*ResSmall], h.Resized[2*ResSmall+1]),
		"***********IMGSTORE HEADER END***********\n",
		"*****************************************\n",
	} {
		n, err := io.WriteString(w, line)
		total += int64(n)

		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// ImageMeta is one slot of the metadata table.
type ImageMeta struct {
	// ID is the unique identifier, at most MaxImgIDLen bytes.
	ID string

	// SHA is the content digest of the original image bytes.
	SHA [shaLen]byte

	// ResOrig is the original image resolution as width, height.
	ResOrig [2]uint32

	// Size holds the byte length of each variant; 0 means absent.
	Size [nbRes]uint32

	// Offset holds the file position of each variant; 0 means absent.
	Offset [nbRes]uint64

	// Valid is slotNonEmpty while the slot is in use.
	Valid uint16

	// Reserved padding, kept for a stable record size.
	Unused uint16
}

// isValid reports whether the slot holds a live image.
func (m ImageMeta) isValid() bool {
	return m.Valid == slotNonEmpty
}

// WriteTo prints the slot in the store's human listing format.
func (m *ImageMeta) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, line := range []string{
		fmt.Sprintf("IMAGE ID: %s\n", m.ID),
		fmt.Sprintf("SHA: %s\n", hex.EncodeToString(m.SHA[:])),
		fmt.Sprintf("VALID: %d\n", m.Valid),
		fmt.Sprintf("UNUSED: %d\n", m.Unused),
		fmt.Sprintf("OFFSET ORIG. : %d\t\tSIZE ORIG. : %d\n", m.Offset[ResOrig], m.Size[ResOrig]),
		fmt.Sprintf("OFFSET THUMB.: %d\t\tSIZE THUMB.: %d\n", m.Offset[ResThumb], m.Size[ResThumb]),
		fmt.Sprintf("OFFSET SMALL : %d\t\tSIZE SMALL : %d\n", m.Offset[ResSmall], m.Size[ResSmall]),
		fmt.Sprintf("ORIGINAL: %d x %d\n", m.ResOrig[0], m.ResOrig[1]),
		"*****************************************\n",
	} {
		n, err := io.WriteString(w, line)
		total += int64(n)

		if err != nil {
			return total, err
		}
	}

	return total, nil
}
