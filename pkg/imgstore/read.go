package imgstore

import "fmt"

// Read returns the bytes of the variant res of the image identified by id.
// An absent reduced variant is materialised first (see resize), so reading
// a thumbnail or small variant may grow the store. The returned buffer is
// owned by the caller.
func (s *Store) Read(id string, res Resolution) ([]byte, error) {
	if s.closed {
		return nil, fmt.Errorf("%w: store is closed", ErrIO)
	}

	if !res.valid() {
		return nil, fmt.Errorf("%w: variant code %d", ErrResolutions, int(res))
	}

	i := s.findByID(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrFileNotFound, id)
	}

	if s.meta[i].Size[res] == 0 {
		if err := s.resize(i, res); err != nil {
			return nil, err
		}
	}

	return s.readBlob(s.meta[i].Offset[res], s.meta[i].Size[res])
}
