package visualization

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"spmview/internal/models"
)

// LoadFrame reads a raster image (PNG, JPEG, TIFF, BMP or GIF) as a real
// frame. Pixels are converted to luminance in the 0-1 range.
func LoadFrame(path string, r models.ScanRange) (models.Frame, models.ScanMetadata, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return models.Frame{}, models.ScanMetadata{}, fmt.Errorf("failed to load image %s: %w", path, err)
	}

	frame := ImageToFrame(img, r)
	meta := models.ScanMetadata{
		Source:    path,
		Channel:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Direction: "forward",
		Range:     r,
		Width:     frame.Width,
		Height:    frame.Height,
	}
	return frame, meta, nil
}

// ImageToFrame converts an image to a real frame of luminance values in 0-1.
func ImageToFrame(img image.Image, r models.ScanRange) models.Frame {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	result := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// grayscale NRGBA has equal channels
			result[y*width+x] = float64(gray.Pix[y*gray.Stride+4*x]) / 255.0
		}
	}

	return models.NewRealFrame(result, width, height, r)
}
