package printer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monoImage(w, h int, black func(x, y int) bool) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if black(x, y) {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestEncodeRasterHeader(t *testing.T) {
	img := monoImage(16, 3, func(x, y int) bool { return false })

	data, err := EncodeRaster(img, 384)
	require.NoError(t, err)

	// ESC @ then GS v 0 with width in bytes and height in dots,
	// both little-endian.
	require.True(t, len(data) > 10)
	assert.Equal(t, []byte{ESC, '@'}, data[:2])
	assert.Equal(t, []byte{GS, 'v', '0', 0x00}, data[2:6])
	assert.Equal(t, byte(2), data[6], "16 px = 2 bytes per row")
	assert.Equal(t, byte(0), data[7])
	assert.Equal(t, byte(3), data[8])
	assert.Equal(t, byte(0), data[9])

	// 3 rows of 2 bytes, then feed + cut.
	assert.Len(t, data, 10+3*2+3+3)
}

func TestEncodeRasterBitPacking(t *testing.T) {
	// One row, black pixels at x=0 and x=9.
	img := monoImage(10, 1, func(x, y int) bool { return x == 0 || x == 9 })

	data, err := EncodeRaster(img, 384)
	require.NoError(t, err)

	row := data[10 : 10+2]
	assert.Equal(t, byte(0x80), row[0], "x=0 is the high bit of the first byte")
	assert.Equal(t, byte(0x40), row[1], "x=9 is the second bit of the second byte")
}

func TestEncodeRasterEndsWithCut(t *testing.T) {
	img := monoImage(8, 1, func(x, y int) bool { return true })

	data, err := EncodeRaster(img, 384)
	require.NoError(t, err)
	assert.Equal(t, []byte{GS, 'V', 0x00}, data[len(data)-3:])
}

func TestEncodeRasterRejectsTooWide(t *testing.T) {
	img := monoImage(400, 1, func(x, y int) bool { return false })

	_, err := EncodeRaster(img, 384)
	assert.Error(t, err)
}

func TestEncodeRasterRejectsEmpty(t *testing.T) {
	_, err := EncodeRaster(image.NewRGBA(image.Rect(0, 0, 0, 0)), 384)
	assert.Error(t, err)
}

func TestDocumentKeyValueAlignment(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("Subtotal", "Rs 70.00")

	out := string(doc.Bytes())
	assert.Contains(t, out, "Subtotal")
	assert.Contains(t, out, "Rs 70.00")
	// Key + padding + value fills the full line width.
	assert.Contains(t, out, "Subtotal"+"                "+"Rs 70.00")
}
