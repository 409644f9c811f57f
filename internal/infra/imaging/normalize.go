package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MaxSide = 512
	Quality = 80

	// MaxPixels caps the declared source size; the decoder allocates the
	// full canvas from the header before reading any pixel data.
	MaxPixels = 40_000_000
)

var (
	ErrNotImage = errors.New("imaging: not a supported image")
	ErrTooLarge = fmt.Errorf("%w: too many pixels", ErrNotImage)
)

// Normalize decodes a JPEG, PNG or WebP image, shrinks it to fit
// MaxSide x MaxSide and re-encodes it as WebP. Small images keep their size.
func Normalize(r io.Reader) ([]byte, error) {
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return nil, ErrNotImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, ErrTooLarge
	}

	src, _, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return nil, ErrNotImage
	}

	dst := fit(src, MaxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}

	nw, nh := maxSide, maxSide
	if w >= h {
		nh = h * maxSide / w
	} else {
		nw = w * maxSide / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
