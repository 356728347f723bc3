package imgstore

import (
	"bytes"
	"encoding/binary"
)

// On-disk format constants. The file is a flat little-endian layout:
// [Header][Slot 0]...[Slot max-1][blob][blob]...
const (
	// Magic identifying the format, stored null-padded in the header name
	// field. Its presence at file start is the compatibility signal.
	magic = "EPFL ImgStore binary"

	// Maximum length of the store name, excluding the terminating null.
	maxNameLen = 31

	// Maximum length of an image identifier, excluding the terminating null.
	MaxImgIDLen = 127

	// Capacity bounds for the slot table.
	MinMaxFiles = 1
	MaxMaxFiles = 100_000

	// Default creation parameters.
	DefaultMaxFiles = 10
	DefaultResThumb = 64
	DefaultResSmall = 256

	// Upper bounds on the reduced-variant boxes.
	MaxResThumb = 128
	MaxResSmall = 512

	// SHA-256 digest length.
	shaLen = 32

	// Slot validity markers.
	slotEmpty    = 0
	slotNonEmpty = 1
)

// Header field offsets (bytes from file start).
const (
	offName     = 0x00 // [32]byte, null-terminated
	offVersion  = 0x20 // uint32
	offNumFiles = 0x24 // uint32
	offMaxFiles = 0x28 // uint32
	offResized  = 0x2C // [4]uint16: thumbW, thumbH, smallW, smallH
	offUnused32 = 0x34 // uint32
	offUnused64 = 0x38 // uint64

	headerSize = 0x40
)

// Slot field offsets (bytes from slot start).
const (
	slotOffID      = 0x00 // [128]byte, null-terminated
	slotOffSHA     = 0x80 // [32]byte
	slotOffResOrig = 0xA0 // [2]uint32: width, height
	slotOffSize    = 0xA8 // [3]uint32, indexed by Resolution
	slotOffOffset  = 0xB4 // [3]uint64, indexed by Resolution
	slotOffValid   = 0xCC // uint16
	slotOffUnused  = 0xCE // uint16

	slotSize = 0xD0
)

// blobStart returns the first byte offset of the blob region for a store
// with the given capacity. Variant offsets below it (other than the 0
// absent sentinel) are forbidden.
func blobStart(maxFiles uint32) uint64 {
	return headerSize + uint64(maxFiles)*slotSize
}

// encodeHeader serialises h into a 64-byte record.
func encodeHeader(h *Header) []byte {
	buf := make([]byte, headerSize)

	copy(buf[offName:offName+maxNameLen], h.Name)
	binary.LittleEndian.PutUint32(buf[offVersion:], h.Version)
	binary.LittleEndian.PutUint32(buf[offNumFiles:], h.NumFiles)
	binary.LittleEndian.PutUint32(buf[offMaxFiles:], h.MaxFiles)

	for i, r := range h.Resized {
		binary.LittleEndian.PutUint16(buf[offResized+2*i:], r)
	}

	binary.LittleEndian.PutUint32(buf[offUnused32:], h.Unused32)
	binary.LittleEndian.PutUint64(buf[offUnused64:], h.Unused64)

	return buf
}

// decodeHeader deserialises a 64-byte record into a Header.
func decodeHeader(buf []byte) Header {
	var h Header

	h.Name = cString(buf[offName : offName+maxNameLen+1])
	h.Version = binary.LittleEndian.Uint32(buf[offVersion:])
	h.NumFiles = binary.LittleEndian.Uint32(buf[offNumFiles:])
	h.MaxFiles = binary.LittleEndian.Uint32(buf[offMaxFiles:])

	for i := range h.Resized {
		h.Resized[i] = binary.LittleEndian.Uint16(buf[offResized+2*i:])
	}

	h.Unused32 = binary.LittleEndian.Uint32(buf[offUnused32:])
	h.Unused64 = binary.LittleEndian.Uint64(buf[offUnused64:])

	return h
}

// encodeSlot serialises m into a 208-byte record.
func encodeSlot(m *ImageMeta) []byte {
	buf := make([]byte, slotSize)

	copy(buf[slotOffID:slotOffID+MaxImgIDLen], m.ID)
	copy(buf[slotOffSHA:], m.SHA[:])

	for i, r := range m.ResOrig {
		binary.LittleEndian.PutUint32(buf[slotOffResOrig+4*i:], r)
	}

	for i, s := range m.Size {
		binary.LittleEndian.PutUint32(buf[slotOffSize+4*i:], s)
	}

	for i, o := range m.Offset {
		binary.LittleEndian.PutUint64(buf[slotOffOffset+8*i:], o)
	}

	binary.LittleEndian.PutUint16(buf[slotOffValid:], m.Valid)
	binary.LittleEndian.PutUint16(buf[slotOffUnused:], m.Unused)

	return buf
}

// decodeSlot deserialises a 208-byte record into an ImageMeta.
func decodeSlot(buf []byte) ImageMeta {
	var m ImageMeta

	m.ID = cString(buf[slotOffID : slotOffID+MaxImgIDLen+1])
	copy(m.SHA[:], buf[slotOffSHA:slotOffSHA+shaLen])

	for i := range m.ResOrig {
		m.ResOrig[i] = binary.LittleEndian.Uint32(buf[slotOffResOrig+4*i:])
	}

	for i := range m.Size {
		m.Size[i] = binary.LittleEndian.Uint32(buf[slotOffSize+4*i:])
	}

	for i := range m.Offset {
		m.Offset[i] = binary.LittleEndian.Uint64(buf[slotOffOffset+8*i:])
	}

	m.Valid = binary.LittleEndian.Uint16(buf[slotOffValid:])
	m.Unused = binary.LittleEndian.Uint16(buf[slotOffUnused:])

	return m
}

// cString returns the bytes of buf up to the first null as a string.
func cString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}

	return string(buf)
}
