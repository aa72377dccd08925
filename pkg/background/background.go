// Package background removes slowly varying offsets from raw SPM frames so
// that local topographic contrast becomes visible.
package background

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"spmview/internal/models"
	"spmview/pkg/spatial"
)

// Subtract removes the background selected by mode and returns a new frame.
//
// Frames with a single row or column (including 1x1) are returned unchanged
// for every mode, since neither a plane nor a per-row trend is defined there.
func Subtract(frame models.Frame, mode models.BackgroundMode) (models.Frame, error) {
	if err := frame.Validate(); err != nil {
		return models.Frame{}, err
	}
	if frame.Kind != models.Real {
		return models.Frame{}, fmt.Errorf("%w: background subtraction needs a real frame, got %s",
			models.ErrInvalidFrameShape, frame.Kind)
	}

	mode, err := models.ParseBackgroundMode(string(mode))
	if err != nil {
		return models.Frame{}, err
	}
	if mode == models.BackgroundNone || frame.Width == 1 || frame.Height == 1 {
		return frame.Clone(), nil
	}

	switch mode {
	case models.BackgroundPlane:
		return Plane(frame)
	case models.BackgroundLinewise:
		return Linewise(frame), nil
	}
	return frame.Clone(), nil
}

// Plane subtracts the mean value and the plane whose slope is the mean Sobel
// gradient. Pixel coordinates are centred on the frame so the plane itself
// has zero mean. Frames narrower than 3 pixels in either direction have no
// gradient and only lose their mean.
func Plane(frame models.Frame) (models.Frame, error) {
	mean := stat.Mean(frame.Real, nil)

	var slope complex128
	if frame.Width >= 3 && frame.Height >= 3 {
		g, err := spatial.MeanGradient(frame)
		if err != nil {
			return models.Frame{}, err
		}
		slope = g
	}

	cx := float64(frame.Width-1) / 2
	cy := float64(frame.Height-1) / 2

	out := make([]float64, len(frame.Real))
	for y := 0; y < frame.Height; y++ {
		py := float64(y) - cy
		for x := 0; x < frame.Width; x++ {
			px := float64(x) - cx
			plane := px*real(slope) + py*imag(slope)
			i := y*frame.Width + x
			out[i] = frame.Real[i] - plane - mean
		}
	}
	return models.NewRealFrame(out, frame.Width, frame.Height, frame.Range), nil
}

// Linewise subtracts from every row its own mean, removing the per-scanline
// offset drift of raster scans.
func Linewise(frame models.Frame) models.Frame {
	out := make([]float64, len(frame.Real))
	for y := 0; y < frame.Height; y++ {
		row := frame.Real[y*frame.Width : (y+1)*frame.Width]
		dst := out[y*frame.Width : (y+1)*frame.Width]
		copy(dst, row)
		floats.AddConst(-stat.Mean(row, nil), dst)
	}
	return models.NewRealFrame(out, frame.Width, frame.Height, frame.Range)
}
