package imgstore

import "fmt"

// Delete invalidates the first valid slot whose identifier matches id. The
// blob bytes stay in the file until the next garbage collection; when other
// slots share the content, the blob remains reachable through them.
func (s *Store) Delete(id string) error {
	if err := s.writable(); err != nil {
		return err
	}

	if s.header.NumFiles == 0 {
		return fmt.Errorf("%w: %q", ErrFileNotFound, id)
	}

	i := s.findByID(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrFileNotFound, id)
	}

	s.meta[i].Valid = slotEmpty

	if err := s.writeSlot(i); err != nil {
		return err
	}

	s.header.Version++
	s.header.NumFiles--

	return s.writeHeader()
}
