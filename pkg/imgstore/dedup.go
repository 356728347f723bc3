package imgstore

import "fmt"

// dedup scans every slot other than i for identifier and content collisions.
// Slot i must be freshly populated: identifier, SHA and original size set,
// valid, variant offsets still zero.
//
// An identifier collision with any valid slot is ErrDuplicateID; names stay
// unique even for matching content. The first valid slot with an identical
// SHA is a content duplicate: its resolution, sizes, offsets and reserved
// padding are copied into slot i, sharing the stored blobs. Both checks run
// in the same single pass.
//
// Returns true when a content duplicate was found. Otherwise slot i's
// original offset is left 0, the caller-must-still-write-the-blob sentinel.
func (s *Store) dedup(i int) (bool, error) {
	if i < 0 || i >= len(s.meta) {
		return false, fmt.Errorf("%w: slot index %d", ErrInvalidArgument, i)
	}

	target := &s.meta[i]

	for j := range s.meta {
		if j == i || !s.meta[j].isValid() {
			continue
		}

		if s.meta[j].ID == target.ID {
			return false, fmt.Errorf("%w: %q", ErrDuplicateID, target.ID)
		}

		if s.meta[j].SHA == target.SHA {
			src := &s.meta[j]

			target.ResOrig = src.ResOrig
			target.Size = src.Size
			target.Offset = src.Offset
			target.Unused = src.Unused

			return true, nil
		}
	}

	target.Offset[ResOrig] = 0

	return false, nil
}
