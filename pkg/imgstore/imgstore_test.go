package imgstore

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t, 5)

	h := s.Header()
	assert.Equal(t, magic, h.Name)
	assert.Equal(t, uint32(0), h.Version)
	assert.Equal(t, uint32(0), h.NumFiles)
	assert.Equal(t, uint32(5), h.MaxFiles)

	// Header plus the preallocated slot table, no blobs yet.
	assert.Equal(t, int64(blobStart(5)), fileSize(t, path))
}

func TestCreateBounds(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, tt := range []struct {
		name    string
		tmpl    Header
		wantErr error
	}{
		{
			name:    "zero max_files",
			tmpl:    Header{MaxFiles: 0, Resized: testHeader(1).Resized},
			wantErr: ErrMaxFiles,
		},
		{
			name:    "max_files too large",
			tmpl:    Header{MaxFiles: MaxMaxFiles + 1, Resized: testHeader(1).Resized},
			wantErr: ErrMaxFiles,
		},
		{
			name:    "thumb box too large",
			tmpl:    Header{MaxFiles: 10, Resized: [4]uint16{129, 64, 256, 256}},
			wantErr: ErrResolutions,
		},
		{
			name:    "small box too large",
			tmpl:    Header{MaxFiles: 10, Resized: [4]uint16{64, 64, 513, 256}},
			wantErr: ErrResolutions,
		},
		{
			name:    "zero thumb box",
			tmpl:    Header{MaxFiles: 10, Resized: [4]uint16{0, 0, 256, 256}},
			wantErr: ErrResolutions,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Create(filepath.Join(dir, tt.name+".imgst"), tt.tmpl)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := Create("", testHeader(10))
		require.ErrorIs(t, err, ErrInvalidFilename)
	})

	t.Run("max_files upper bound accepted", func(t *testing.T) {
		t.Parallel()

		s, err := Create(filepath.Join(dir, "upper.imgst"), testHeader(MaxMaxFiles))
		require.NoError(t, err)
		require.NoError(t, s.Close())
	})
}

func TestCreateTruncatesExisting(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t, 2)
	require.NoError(t, s.Insert(makeJPEG(t, 20, 20), "pic"))
	require.NoError(t, s.Close())

	s2, err := Create(path, testHeader(2))
	require.NoError(t, err)
	defer s2.Close()

	assert.Equal(t, uint32(0), s2.Header().NumFiles)
	assert.Equal(t, int64(blobStart(2)), fileSize(t, path))
}

func TestOpenRoundTrip(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t, 3)
	img := makeJPEG(t, 40, 30)
	require.NoError(t, s.Insert(img, "pic1"))
	require.NoError(t, s.Close())

	s2, err := Open(path, ReadOnly)
	require.NoError(t, err)
	defer s2.Close()

	h := s2.Header()
	assert.Equal(t, uint32(1), h.NumFiles)
	assert.Equal(t, uint32(1), h.Version)
	assert.Equal(t, uint32(3), h.MaxFiles)

	m := s2.Meta(0)
	assert.Equal(t, "pic1", m.ID)
	assert.Equal(t, [2]uint32{40, 30}, m.ResOrig)
	assert.Equal(t, uint32(len(img)), m.Size[ResOrig])
	assert.Equal(t, uint64(blobStart(3)), m.Offset[ResOrig])
}

func TestOpenErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "nope.imgst"), ReadOnly)
		require.ErrorIs(t, err, ErrIO)
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := Open("", ReadOnly)
		require.ErrorIs(t, err, ErrInvalidFilename)
	})

	t.Run("not an imgstore file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "junk.imgst")
		require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0o644))

		_, err := Open(path, ReadOnly)
		require.ErrorIs(t, err, ErrIO)
	})

	t.Run("truncated header", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "short.imgst")
		require.NoError(t, os.WriteFile(path, []byte(magic), 0o644))

		_, err := Open(path, ReadOnly)
		require.ErrorIs(t, err, ErrIO)
	})

	t.Run("truncated slot table", func(t *testing.T) {
		t.Parallel()

		s, path := newTestStore(t, 4)
		require.NoError(t, s.Close())
		require.NoError(t, os.Truncate(path, headerSize+slotSize))

		_, err := Open(path, ReadOnly)
		require.ErrorIs(t, err, ErrIO)
	})
}

func TestOpenTrustsSlotTable(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t, 3)
	require.NoError(t, s.Insert(makeJPEG(t, 20, 20), "pic1"))
	require.NoError(t, s.Insert(makeJPEG(t, 30, 30), "pic2"))
	require.NoError(t, s.Close())

	// Simulate a crash between slot flush and header flush: the header
	// count goes stale while the slot table holds the truth.
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(t, err)

	var stale [4]byte
	binary.LittleEndian.PutUint32(stale[:], 1)
	_, err = f.WriteAt(stale[:], offNumFiles)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	s2, err := Open(path, ReadOnly)
	require.NoError(t, err)
	defer s2.Close()

	assert.Equal(t, uint32(2), s2.Header().NumFiles)
}

func TestCloseIdempotent(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, 2)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	var nilStore *Store
	require.NoError(t, nilStore.Close())
}

func TestClosedHandleFails(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, 2)
	require.NoError(t, s.Close())

	require.ErrorIs(t, s.Insert(makeJPEG(t, 10, 10), "pic"), ErrIO)

	_, err := s.Read("pic", ResOrig)
	require.ErrorIs(t, err, ErrIO)

	require.ErrorIs(t, s.Delete("pic"), ErrIO)
}

func TestReadOnlyHandleRejectsWrites(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t, 2)
	require.NoError(t, s.Insert(makeJPEG(t, 10, 10), "pic"))
	require.NoError(t, s.Close())

	ro, err := Open(path, ReadOnly)
	require.NoError(t, err)
	defer ro.Close()

	require.ErrorIs(t, ro.Insert(makeJPEG(t, 10, 10), "other"), ErrIO)
	require.ErrorIs(t, ro.Delete("pic"), ErrIO)

	// Reading the stored original needs no write access.
	_, err = ro.Read("pic", ResOrig)
	require.NoError(t, err)
}

func TestWriterLockExcludesSecondWriter(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t, 2)
	defer s.Close()

	_, err := Open(path, ReadWrite)
	require.ErrorIs(t, err, ErrIO)
}
