package imgstore

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Insert stores img under id. The content is hashed; if another valid slot
// already holds identical bytes the blob is shared instead of written again.
// An identifier already in use is ErrDuplicateID, a full slot table is
// ErrFullImgStore.
//
// Persisted write order is blob append (if any), then the slot record, then
// the header. A crash after the append but before the flushes leaves only a
// dangling blob that no slot references.
func (s *Store) Insert(img []byte, id string) error {
	if err := s.writable(); err != nil {
		return err
	}

	if err := validateImgID(id); err != nil {
		return err
	}

	if s.header.NumFiles >= s.header.MaxFiles {
		return ErrFullImgStore
	}

	i, ok := s.findFreeSlot()
	if !ok {
		return ErrFullImgStore
	}

	s.meta[i] = ImageMeta{
		ID:    id,
		SHA:   sha256.Sum256(img),
		Valid: slotNonEmpty,
	}
	s.meta[i].Size[ResOrig] = uint32(len(img))

	dup, err := s.dedup(i)
	if err != nil {
		s.meta[i] = ImageMeta{}

		return err
	}

	if !dup {
		pos, err := s.appendBlob(img)
		if err != nil {
			s.meta[i] = ImageMeta{}

			return err
		}

		s.meta[i].Offset[ResOrig] = pos
	}

	w, h, err := decodeResolution(img)
	if err != nil {
		s.meta[i] = ImageMeta{}

		return err
	}

	s.meta[i].ResOrig = [2]uint32{w, h}

	s.header.NumFiles++
	s.header.Version++

	if err := s.writeSlot(i); err != nil {
		return err
	}

	return s.writeHeader()
}

// findFreeSlot returns the index of the first empty slot.
func (s *Store) findFreeSlot() (int, bool) {
	for i := range s.meta {
		if !s.meta[i].isValid() {
			return i, true
		}
	}

	return 0, false
}

// validateImgID checks the identifier bounds: 1 to MaxImgIDLen bytes, no
// embedded null.
func validateImgID(id string) error {
	if len(id) == 0 || len(id) > MaxImgIDLen || strings.IndexByte(id, 0) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidImgID, id)
	}

	return nil
}
