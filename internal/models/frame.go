package models

import (
	"fmt"
	"math"
)

// Kind tags which buffer of a Frame carries the data.
type Kind int

const (
	// Real frames store one float64 per pixel in Real.
	Real Kind = iota
	// Complex frames store one complex128 per pixel in Complex.
	Complex
	// RGB frames store three interleaved float64 channels (r, g, b in [0,1])
	// per pixel in RGB.
	RGB
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	switch k {
	case Real:
		return "real"
	case Complex:
		return "complex"
	case RGB:
		return "rgb"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ScanRange is the physical extent of a frame in nanometers.
type ScanRange struct {
	// Width is the extent along the fast scan axis (columns)
	Width float64 `yaml:"width"`

	// Height is the extent along the slow scan axis (rows)
	Height float64 `yaml:"height"`
}

// Validate checks that both components are positive and finite.
func (r ScanRange) Validate() error {
	if !(r.Width > 0) || !(r.Height > 0) || math.IsInf(r.Width, 0) || math.IsInf(r.Height, 0) {
		return fmt.Errorf("%w: scan range must be positive, got %gx%g nm", ErrInvalidParameter, r.Width, r.Height)
	}
	return nil
}

// Frame is a single 2D scan image, row-major, with its physical extent.
//
// Exactly one of Real, Complex or RGB is populated, selected by Kind.
// Stages never modify a Frame they receive; they return a new one.
type Frame struct {
	// Kind selects the populated buffer
	Kind Kind

	// Width and Height are the dimensions in pixels
	Width  int
	Height int

	// Range is the physical extent of the frame
	Range ScanRange

	Real    []float64
	Complex []complex128
	RGB     []float64
}

// NewRealFrame wraps data (row-major, len width*height) as a Real frame.
func NewRealFrame(data []float64, width, height int, r ScanRange) Frame {
	return Frame{Kind: Real, Width: width, Height: height, Range: r, Real: data}
}

// NewComplexFrame wraps data (row-major, len width*height) as a Complex frame.
func NewComplexFrame(data []complex128, width, height int, r ScanRange) Frame {
	return Frame{Kind: Complex, Width: width, Height: height, Range: r, Complex: data}
}

// NewRGBFrame wraps interleaved rgb data (len 3*width*height) as an RGB frame.
func NewRGBFrame(data []float64, width, height int, r ScanRange) Frame {
	return Frame{Kind: RGB, Width: width, Height: height, Range: r, RGB: data}
}

// Len returns the number of pixels.
func (f Frame) Len() int {
	return f.Width * f.Height
}

// Validate checks the dimensions against the populated buffer.
func (f Frame) Validate() error {
	if f.Width < 1 || f.Height < 1 {
		return fmt.Errorf("%w: frame is %dx%d", ErrInvalidFrameShape, f.Width, f.Height)
	}

	var got, want int
	switch f.Kind {
	case Real:
		got, want = len(f.Real), f.Len()
	case Complex:
		got, want = len(f.Complex), f.Len()
	case RGB:
		got, want = len(f.RGB), 3*f.Len()
	default:
		return fmt.Errorf("%w: unknown frame kind %v", ErrInvalidFrameShape, f.Kind)
	}
	if got != want {
		return fmt.Errorf("%w: %s buffer holds %d values, %dx%d frame needs %d",
			ErrInvalidFrameShape, f.Kind, got, f.Width, f.Height, want)
	}
	return nil
}

// PixelPitch returns the physical size of one pixel along x and y.
func (f Frame) PixelPitch() (dx, dy float64) {
	return f.Range.Width / float64(f.Width), f.Range.Height / float64(f.Height)
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	out := f
	if f.Real != nil {
		out.Real = append([]float64(nil), f.Real...)
	}
	if f.Complex != nil {
		out.Complex = append([]complex128(nil), f.Complex...)
	}
	if f.RGB != nil {
		out.RGB = append([]float64(nil), f.RGB...)
	}
	return out
}

// AsComplex returns the pixels as complex values. Real frames are promoted
// with a zero imaginary part; the returned slice is always freshly allocated.
func (f Frame) AsComplex() []complex128 {
	switch f.Kind {
	case Complex:
		return append([]complex128(nil), f.Complex...)
	case Real:
		out := make([]complex128, len(f.Real))
		for i, v := range f.Real {
			out[i] = complex(v, 0)
		}
		return out
	default:
		return nil
	}
}

// Shrunk returns the range left after cropping border pixels from each side,
// keeping the pixel pitch unchanged.
func (f Frame) Shrunk(border int) ScanRange {
	dx, dy := f.PixelPitch()
	return ScanRange{
		Width:  dx * float64(f.Width-2*border),
		Height: dy * float64(f.Height-2*border),
	}
}

// ScanMetadata describes where a frame came from. It is built once by the
// loader and passed around by value.
type ScanMetadata struct {
	// Source is the file or acquisition name the frame was read from
	Source string

	// Channel is the recorded physical quantity (e.g. "Z", "Current")
	Channel string

	// Direction is the scan direction ("forward" or "backward")
	Direction string

	// Range is the physical extent of the scan
	Range ScanRange

	// Width and Height are the pixel dimensions of the scan
	Width  int
	Height int
}
