package imgstore

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testHeader returns a creation template with the default parameters.
func testHeader(maxFiles uint32) Header {
	return Header{
		MaxFiles: maxFiles,
		Resized: [4]uint16{
			DefaultResThumb, DefaultResThumb,
			DefaultResSmall, DefaultResSmall,
		},
	}
}

// newTestStore creates a fresh store in a temp dir and returns it with its
// path. The handle is closed automatically at test end.
func newTestStore(t *testing.T, maxFiles uint32) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.imgst")

	s, err := Create(path, testHeader(maxFiles))
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

// makeJPEG encodes a deterministic w x h gradient as JPEG.
func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / max(w-1, 1)),
				G: uint8(y * 255 / max(h-1, 1)),
				B: uint8((x + y) % 256),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	return buf.Bytes()
}

// jpegDims decodes data and returns its pixel dimensions.
func jpegDims(t *testing.T, data []byte) (int, int) {
	t.Helper()

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)

	return cfg.Width, cfg.Height
}

// fileSize stats path.
func fileSize(t *testing.T, path string) int64 {
	t.Helper()

	fi, err := os.Stat(path)
	require.NoError(t, err)

	return fi.Size()
}
