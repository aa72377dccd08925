package spatial

import (
	"spmview/internal/models"
)

// Laplacian approximates d2I/dx2 + d2I/dy2 with the 5-point stencil in valid
// mode, in value units per pixel squared. Complex frames are filtered
// component-wise.
func Laplacian(frame models.Frame) (models.Frame, error) {
	if err := requireValid(frame, "laplacian"); err != nil {
		return models.Frame{}, err
	}

	switch frame.Kind {
	case models.Complex:
		re, im := splitComplex(frame.Complex)
		lre, w, h := correlateValid(re, frame.Width, frame.Height, laplace5)
		lim, _, _ := correlateValid(im, frame.Width, frame.Height, laplace5)
		return models.NewComplexFrame(joinComplex(lre, lim), w, h, frame.Shrunk(1)), nil
	case models.Real:
		out, w, h := correlateValid(frame.Real, frame.Width, frame.Height, laplace5)
		return models.NewRealFrame(out, w, h, frame.Shrunk(1)), nil
	default:
		return models.Frame{}, unsupportedKind("laplacian", frame.Kind)
	}
}
