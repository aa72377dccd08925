package spatial

import (
	"math"

	"spmview/internal/models"
)

// NormalZ returns the z-component of the unit surface normal of a height
// field, 1/sqrt(1 + sx^2 + sy^2), where sx and sy are physical slopes.
//
// A real frame is differentiated first. A complex frame is taken to be a
// gradient already produced by Gradient, in value units per pixel. Either
// way the per-pixel derivatives are divided by the pixel pitch, so the frame
// values must share the length unit of the scan range.
func NormalZ(frame models.Frame) (models.Frame, error) {
	if err := frame.Validate(); err != nil {
		return models.Frame{}, err
	}
	if err := frame.Range.Validate(); err != nil {
		return models.Frame{}, err
	}

	grad := frame
	switch frame.Kind {
	case models.Real:
		g, err := Gradient(frame)
		if err != nil {
			return models.Frame{}, err
		}
		grad = g
	case models.Complex:
	default:
		return models.Frame{}, unsupportedKind("normal", frame.Kind)
	}

	dx, dy := grad.PixelPitch()
	out := make([]float64, len(grad.Complex))
	for i, g := range grad.Complex {
		sx := real(g) / dx
		sy := imag(g) / dy
		out[i] = 1 / math.Sqrt(1+sx*sx+sy*sy)
	}
	return models.NewRealFrame(out, grad.Width, grad.Height, grad.Range), nil
}
