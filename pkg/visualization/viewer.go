// Package visualization turns frames into images for preview output and
// reads raster images as frames.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"spmview/internal/models"
)

// Viewer maps a processed frame onto an image using a display range.
type Viewer struct {
	frame models.Frame

	// lo and hi are the values mapped to black and white
	lo float64
	hi float64
}

// NewViewer creates a viewer for frame with display range [lo, hi]. RGB
// frames ignore the range.
func NewViewer(frame models.Frame, lo, hi float64) (*Viewer, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}
	if frame.Kind == models.Complex {
		return nil, fmt.Errorf("%w: project complex frames before viewing", models.ErrInvalidFrameShape)
	}
	if hi < lo || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil, fmt.Errorf("%w: display range [%g, %g]", models.ErrInvalidParameter, lo, hi)
	}
	return &Viewer{frame: frame, lo: lo, hi: hi}, nil
}

// Render draws the frame. Real frames become 16-bit grayscale with values
// outside the display range clipped; RGB frames become 16-bit colour.
func (v *Viewer) Render() image.Image {
	w, h := v.frame.Width, v.frame.Height

	if v.frame.Kind == models.RGB {
		img := image.NewNRGBA64(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := 3 * (y*w + x)
				img.SetNRGBA64(x, y, color.NRGBA64{
					R: to16(v.frame.RGB[i]),
					G: to16(v.frame.RGB[i+1]),
					B: to16(v.frame.RGB[i+2]),
					A: 0xffff,
				})
			}
		}
		return img
	}

	img := image.NewGray16(image.Rect(0, 0, w, h))
	span := v.hi - v.lo
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			val := v.frame.Real[y*w+x]
			var norm float64
			if span > 0 {
				norm = (val - v.lo) / span
			} else if val > v.lo {
				norm = 1
			}
			img.SetGray16(x, y, color.Gray16{Y: to16(norm)})
		}
	}
	return img
}

// to16 scales a 0-1 value to 16 bits, clipping out-of-range and NaN values.
func to16(f float64) uint16 {
	if math.IsNaN(f) {
		return 0
	}
	return uint16(math.Max(0, math.Min(65535, math.Round(f*65535))))
}

// Save renders the frame and writes it to filename. The format follows the
// file extension (png, jpg, tif, bmp, gif).
func (v *Viewer) Save(filename string) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(v.Render(), filename, imaging.JPEGQuality(90)); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return nil
}
