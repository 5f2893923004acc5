package printer

import (
	"bytes"
	"fmt"
	"image"
)

// rasterThreshold is the luminance cutoff for converting a captured receipt
// image to monochrome dots. Receipts are black text on white, so a midpoint
// threshold keeps text crisp without dithering.
const rasterThreshold = 0x7FFF

// EncodeRaster converts a captured receipt image into an ESC/POS raster job
// (GS v 0). The job is sized to the exact pixel dimensions of the image, so
// the printed output matches the measured receipt height with no margins.
// maxDots is the printer head width in dots (384 for 58mm, 576 for 80mm);
// wider images are an error rather than silently clipped.
func EncodeRaster(img image.Image, maxDots int) ([]byte, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("printer: cannot rasterize empty %dx%d image", w, h)
	}
	if maxDots > 0 && w > maxDots {
		return nil, fmt.Errorf("printer: image width %d exceeds print head width %d", w, maxDots)
	}
	if h > 0xFFFF {
		return nil, fmt.Errorf("printer: image height %d exceeds raster limit", h)
	}

	widthBytes := (w + 7) / 8

	var buf bytes.Buffer
	buf.Write([]byte{ESC, '@'})
	buf.Write([]byte{GS, 'v', '0', 0x00,
		byte(widthBytes & 0xFF), byte(widthBytes >> 8),
		byte(h & 0xFF), byte(h >> 8),
	})

	row := make([]byte, widthBytes)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for i := range row {
			row[i] = 0
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// ITU-R BT.601 luminance; a set bit prints a black dot.
			lum := (299*r + 587*g + 114*b) / 1000
			if lum < rasterThreshold {
				px := x - bounds.Min.X
				row[px/8] |= 0x80 >> (px % 8)
			}
		}
		buf.Write(row)
	}

	// Feed past the cutter and cut so consecutive jobs tear cleanly.
	buf.Write([]byte{LF, LF, LF})
	buf.Write([]byte{GS, 'V', 0x00})

	return buf.Bytes(), nil
}
