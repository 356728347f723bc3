package imgstore

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"golang.org/x/image/draw"
)

// resize materialises the reduced variant res of slot i: it decodes the
// stored original, scales it to fit the configured box while preserving
// aspect, re-encodes it as JPEG and appends the result to the store.
//
// Requesting the original, or a variant that is already present, is a
// successful no-op. The header is rewritten but the version counter is not
// bumped; lazy materialisation is not a visible mutation.
func (s *Store) resize(i int, res Resolution) error {
	if res == ResOrig {
		return nil
	}

	if err := s.writable(); err != nil {
		return err
	}

	if i < 0 || i >= len(s.meta) {
		return fmt.Errorf("%w: slot index %d", ErrInvalidArgument, i)
	}

	if !res.valid() {
		return fmt.Errorf("%w: variant code %d", ErrResolutions, int(res))
	}

	m := &s.meta[i]
	if m.Offset[res] != 0 {
		return nil
	}

	orig, err := s.readBlob(m.Offset[ResOrig], m.Size[ResOrig])
	if err != nil {
		return err
	}

	maxW, maxH := s.header.maxRes(res)

	out, err := shrinkJPEG(orig, uint32(maxW), uint32(maxH))
	if err != nil {
		return err
	}

	pos, err := s.appendBlob(out)
	if err != nil {
		return err
	}

	m.Offset[res] = pos
	m.Size[res] = uint32(len(out))

	if err := s.writeSlot(i); err != nil {
		return err
	}

	return s.writeHeader()
}

// shrinkJPEG decodes a JPEG, scales it by the aspect-preserving ratio
// min(maxW/width, maxH/height) and re-encodes it.
func shrinkJPEG(data []byte, maxW, maxH uint32) ([]byte, error) {
	src, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrImgLib, err)
	}

	b := src.Bounds()
	ratio := shrinkRatio(uint32(b.Dx()), uint32(b.Dy()), maxW, maxH)

	w := max(int(math.Round(ratio*float64(b.Dx()))), 1)
	h := max(int(math.Round(ratio*float64(b.Dy()))), 1)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, nil); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrImgLib, err)
	}

	return buf.Bytes(), nil
}

// shrinkRatio divides each target axis by the same source axis and keeps
// the smaller factor, so the result fits the box on both axes.
func shrinkRatio(width, height, maxW, maxH uint32) float64 {
	return math.Min(
		float64(maxW)/float64(width),
		float64(maxH)/float64(height),
	)
}

// decodeResolution returns the width and height of a JPEG without decoding
// the pixel data.
func decodeResolution(data []byte) (uint32, uint32, error) {
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: decode config: %v", ErrImgLib, err)
	}

	return uint32(cfg.Width), uint32(cfg.Height), nil
}
