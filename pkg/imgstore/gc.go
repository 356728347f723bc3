package imgstore

import (
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// GarbageCollect compacts the store at path: it rebuilds the contents into
// a fresh store at tmpPath, re-inserting the original of every valid slot
// and re-materialising every reduced variant the source had, then atomically
// replaces path with the rebuilt file. Blob bytes left behind by deletions
// and by superseded lazy variants are dropped.
//
// tmpPath must be on the same filesystem as path so the final rename is
// atomic. On failure the source is left intact and the temporary removed.
func GarbageCollect(path, tmpPath string) error {
	if path == "" || tmpPath == "" {
		return ErrInvalidFilename
	}

	src, err := Open(path, ReadOnly)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := rebuild(src, tmpPath); err != nil {
		_ = os.Remove(tmpPath)

		return err
	}

	// Close the source before the rename so the replaced file is not held
	// open (and its lock released) by this process.
	if err := src.Close(); err != nil {
		_ = os.Remove(tmpPath)

		return err
	}

	if err := atomic.ReplaceFile(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("%w: replace %s: %v", ErrIO, path, err)
	}

	return nil
}

// rebuild writes a compacted copy of src at tmpPath.
func rebuild(src *Store, tmpPath string) error {
	dst, err := Create(tmpPath, Header{
		MaxFiles: src.header.MaxFiles,
		Resized:  src.header.Resized,
	})
	if err != nil {
		return err
	}
	defer dst.Close()

	for i := range src.meta {
		m := &src.meta[i]
		if !m.isValid() {
			continue
		}

		orig, err := src.readBlob(m.Offset[ResOrig], m.Size[ResOrig])
		if err != nil {
			return err
		}

		if err := dst.Insert(orig, m.ID); err != nil {
			return err
		}

		j := dst.findByID(m.ID)
		if j < 0 {
			return fmt.Errorf("%w: %q lost during rebuild", ErrFileNotFound, m.ID)
		}

		// Variants the source had materialised stay materialised. Content
		// duplicates may already carry them from the slot they share with.
		for _, res := range []Resolution{ResThumb, ResSmall} {
			if m.Size[res] == 0 {
				continue
			}

			if err := dst.resize(j, res); err != nil {
				return err
			}
		}
	}

	return dst.Close()
}
