package spatial

import (
	"fmt"

	"spmview/internal/models"
)

// Gradient applies the Sobel operator in valid mode and packs both partial
// derivatives into one complex frame: the real part is dI/dx and the
// imaginary part dI/dy, in value units per pixel.
func Gradient(frame models.Frame) (models.Frame, error) {
	if err := requireValid(frame, "gradient"); err != nil {
		return models.Frame{}, err
	}
	if frame.Kind != models.Real {
		return models.Frame{}, fmt.Errorf("%w: gradient needs a real frame, got %s",
			models.ErrInvalidFrameShape, frame.Kind)
	}

	gx, w, h := correlateValid(frame.Real, frame.Width, frame.Height, sobelX)
	gy, _, _ := correlateValid(frame.Real, frame.Width, frame.Height, sobelY)

	out := make([]complex128, len(gx))
	for i := range gx {
		out[i] = complex(sobelNorm*gx[i], sobelNorm*gy[i])
	}
	return models.NewComplexFrame(out, w, h, frame.Shrunk(1)), nil
}

// MeanGradient returns the average of the Sobel gradient over the frame.
func MeanGradient(frame models.Frame) (complex128, error) {
	g, err := Gradient(frame)
	if err != nil {
		return 0, err
	}
	var sum complex128
	for _, c := range g.Complex {
		sum += c
	}
	return sum / complex(float64(len(g.Complex)), 0), nil
}
