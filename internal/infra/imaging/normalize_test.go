package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestNormalizeShrinksLargeImages(t *testing.T) {
	out, err := Normalize(pngOf(t, 1024, 256))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	out, err := Normalize(pngOf(t, 100, 200))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestNormalizeRejectsNonImages(t *testing.T) {
	_, err := Normalize(strings.NewReader("definitely not a picture"))
	assert.ErrorIs(t, err, ErrNotImage)
}

// hugePNG is a valid 8x8 PNG whose header claims 30000x30000.
func hugePNG(t *testing.T) *bytes.Buffer {
	t.Helper()
	b := pngOf(t, 8, 8).Bytes()

	// signature(8) length(4) "IHDR"(4) width(4) height(4) ... crc
	binary.BigEndian.PutUint32(b[16:20], 30000)
	binary.BigEndian.PutUint32(b[20:24], 30000)
	binary.BigEndian.PutUint32(b[29:33], crc32.ChecksumIEEE(b[12:29]))
	return bytes.NewBuffer(b)
}

func TestNormalizeRejectsOversizedCanvas(t *testing.T) {
	_, err := Normalize(hugePNG(t))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.ErrorIs(t, err, ErrNotImage)
}
