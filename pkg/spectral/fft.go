// Package spectral computes 2D discrete Fourier transforms of SPM frames
// together with their reciprocal-space extent.
package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"spmview/internal/models"
)

// Reciprocal is the extent of a transformed frame in reciprocal space,
// k = 2*pi*N/L per axis, in radians per nanometer.
type Reciprocal struct {
	KX float64
	KY float64
}

// ReciprocalRange returns the reciprocal extent for a frame of width x height
// pixels covering r.
func ReciprocalRange(width, height int, r models.ScanRange) (Reciprocal, error) {
	if err := r.Validate(); err != nil {
		return Reciprocal{}, err
	}
	return Reciprocal{
		KX: 2 * math.Pi * float64(width) / r.Width,
		KY: 2 * math.Pi * float64(height) / r.Height,
	}, nil
}

// FFT2 computes the unnormalized forward 2D DFT of a real or complex frame.
// The zero frequency is left at index (0,0); use Shift to centre it.
//
// The returned frame carries the reciprocal extent as its Range.
func FFT2(frame models.Frame) (models.Frame, Reciprocal, error) {
	if err := frame.Validate(); err != nil {
		return models.Frame{}, Reciprocal{}, err
	}
	k, err := ReciprocalRange(frame.Width, frame.Height, frame.Range)
	if err != nil {
		return models.Frame{}, Reciprocal{}, err
	}

	var data []complex128
	switch frame.Kind {
	case models.Real:
		data = realRows(frame.Real, frame.Width, frame.Height)
	case models.Complex:
		data = complexRows(frame.Complex, frame.Width, frame.Height, false)
	default:
		return models.Frame{}, Reciprocal{}, fmt.Errorf("%w: cannot transform %s frame",
			models.ErrInvalidFrameShape, frame.Kind)
	}
	columns(data, frame.Width, frame.Height, false)

	out := models.NewComplexFrame(data, frame.Width, frame.Height, models.ScanRange{Width: k.KX, Height: k.KY})
	return out, k, nil
}

// IFFT2 computes the inverse 2D DFT, normalized by 1/(width*height), so that
// IFFT2(FFT2(f)) reproduces f.
func IFFT2(frame models.Frame, r models.ScanRange) (models.Frame, error) {
	if err := frame.Validate(); err != nil {
		return models.Frame{}, err
	}
	if frame.Kind != models.Complex {
		return models.Frame{}, fmt.Errorf("%w: inverse transform needs a complex frame, got %s",
			models.ErrInvalidFrameShape, frame.Kind)
	}

	data := complexRows(frame.Complex, frame.Width, frame.Height, true)
	columns(data, frame.Width, frame.Height, true)

	scale := complex(1/float64(frame.Len()), 0)
	for i := range data {
		data[i] *= scale
	}
	return models.NewComplexFrame(data, frame.Width, frame.Height, r), nil
}

// realRows transforms every row of a real image with the real FFT and
// rebuilds the negative frequencies from conjugate symmetry, F(n-k) = F*(k).
func realRows(src []float64, width, height int) []complex128 {
	fft := fourier.NewFFT(width)
	result := make([]complex128, width*height)
	half := make([]complex128, width/2+1)

	for i := 0; i < height; i++ {
		fft.Coefficients(half, src[i*width:(i+1)*width])

		row := result[i*width : (i+1)*width]
		copy(row, half)
		for j := len(half); j < width; j++ {
			c := half[width-j]
			row[j] = complex(real(c), -imag(c))
		}
	}
	return result
}

// complexRows transforms every row of a complex image into a new buffer.
func complexRows(src []complex128, width, height int, inverse bool) []complex128 {
	fft := fourier.NewCmplxFFT(width)
	result := make([]complex128, width*height)

	for i := 0; i < height; i++ {
		row := result[i*width : (i+1)*width]
		if inverse {
			fft.Sequence(row, src[i*width:(i+1)*width])
		} else {
			fft.Coefficients(row, src[i*width:(i+1)*width])
		}
	}
	return result
}

// columns transforms every column of data in place.
func columns(data []complex128, width, height int, inverse bool) {
	fft := fourier.NewCmplxFFT(height)
	col := make([]complex128, height)
	out := make([]complex128, height)

	for j := 0; j < width; j++ {
		for i := 0; i < height; i++ {
			col[i] = data[i*width+j]
		}
		if inverse {
			fft.Sequence(out, col)
		} else {
			fft.Coefficients(out, col)
		}
		for i := 0; i < height; i++ {
			data[i*width+j] = out[i]
		}
	}
}

// Shift moves the zero frequency of a transformed frame to the centre pixel
// (width/2, height/2) for display.
func Shift(frame models.Frame) (models.Frame, error) {
	if err := frame.Validate(); err != nil {
		return models.Frame{}, err
	}
	if frame.Kind != models.Complex {
		return models.Frame{}, fmt.Errorf("%w: shift needs a complex frame, got %s",
			models.ErrInvalidFrameShape, frame.Kind)
	}

	w, h := frame.Width, frame.Height
	out := make([]complex128, len(frame.Complex))
	for y := 0; y < h; y++ {
		sy := (y + h/2) % h
		for x := 0; x < w; x++ {
			sx := (x + w/2) % w
			out[sy*w+sx] = frame.Complex[y*w+x]
		}
	}
	return models.NewComplexFrame(out, w, h, frame.Range), nil
}
