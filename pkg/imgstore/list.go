package imgstore

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// ListMode selects the listing representation.
type ListMode int

const (
	// ListHuman prints the header and every valid slot as text.
	ListHuman ListMode = iota

	// ListJSON emits a {"Images": [id, ...]} document.
	ListJSON
)

// listing is the structured document shape.
type listing struct {
	Images []string `json:"Images"`
}

// List writes an enumeration of the valid slots, in slot order, to w. An
// empty store prints a sentinel line in human mode and an empty array in
// JSON mode.
func (s *Store) List(w io.Writer, mode ListMode) error {
	switch mode {
	case ListHuman:
		return s.listHuman(w)
	case ListJSON:
		return s.listJSON(w)
	default:
		return fmt.Errorf("%w: list mode %d", ErrInvalidArgument, int(mode))
	}
}

func (s *Store) listHuman(w io.Writer) error {
	if _, err := s.header.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	any := false

	for i := range s.meta {
		if !s.meta[i].isValid() {
			continue
		}

		any = true

		if _, err := s.meta[i].WriteTo(w); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	if !any {
		if _, err := io.WriteString(w, "<< empty imgStore >>\n"); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	return nil
}

func (s *Store) listJSON(w io.Writer) error {
	doc := listing{Images: []string{}}

	for i := range s.meta {
		if s.meta[i].isValid() {
			doc.Images = append(doc.Images, s.meta[i].ID)
		}
	}

	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	return nil
}
