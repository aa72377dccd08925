// Package spatial implements the finite-difference and convolution operators
// applied to SPM frames: Sobel gradient, Laplacian, surface normal and
// Gaussian blur.
//
// Valid-mode operators shrink the frame by one pixel on every border and keep
// the pixel pitch, so the returned frame carries a correspondingly smaller
// scan range.
package spatial

import (
	"fmt"

	"github.com/anthonynsimon/bild/convolution"

	"spmview/internal/models"
)

// sobelNorm scales the Sobel response so that a unit ramp yields 1.
const sobelNorm = 0.125

var (
	sobelX = &convolution.Kernel{
		Matrix: []float64{
			-1, 0, 1,
			-2, 0, 2,
			-1, 0, 1,
		},
		Width:  3,
		Height: 3,
	}
	sobelY = &convolution.Kernel{
		Matrix: []float64{
			-1, -2, -1,
			0, 0, 0,
			1, 2, 1,
		},
		Width:  3,
		Height: 3,
	}
	laplace5 = &convolution.Kernel{
		Matrix: []float64{
			0, 1, 0,
			1, -4, 1,
			0, 1, 0,
		},
		Width:  3,
		Height: 3,
	}
)

// correlateValid slides k over data (row-major, width x height) without
// flipping it and keeps only positions where k lies fully inside the frame.
func correlateValid(data []float64, width, height int, k *convolution.Kernel) ([]float64, int, int) {
	outW := width - k.Width + 1
	outH := height - k.Height + 1
	out := make([]float64, outW*outH)

	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			var sum float64
			for ky := 0; ky < k.Height; ky++ {
				row := (y + ky) * width
				for kx := 0; kx < k.Width; kx++ {
					sum += data[row+x+kx] * k.At(kx, ky)
				}
			}
			out[y*outW+x] = sum
		}
	}
	return out, outW, outH
}

// requireValid checks that a frame can host a 3x3 valid-mode kernel.
func requireValid(frame models.Frame, op string) error {
	if err := frame.Validate(); err != nil {
		return err
	}
	if frame.Width < 3 || frame.Height < 3 {
		return fmt.Errorf("%w: %s needs at least 3x3 pixels, got %dx%d",
			models.ErrInvalidFrameShape, op, frame.Width, frame.Height)
	}
	return nil
}

// splitComplex separates a complex buffer into real and imaginary parts.
func splitComplex(data []complex128) (re, im []float64) {
	re = make([]float64, len(data))
	im = make([]float64, len(data))
	for i, c := range data {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return re, im
}

// joinComplex is the inverse of splitComplex.
func joinComplex(re, im []float64) []complex128 {
	out := make([]complex128, len(re))
	for i := range re {
		out[i] = complex(re[i], im[i])
	}
	return out
}

// reflect maps an out-of-range index back into [0, n) by mirroring about the
// frame edge (d c b a | a b c d | d c b a).
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

func unsupportedKind(op string, kind models.Kind) error {
	return fmt.Errorf("%w: %s does not accept %s frames", models.ErrInvalidFrameShape, op, kind)
}
