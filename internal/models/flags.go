package models

import (
	"fmt"
	"math"
	"strings"
)

// BackgroundMode selects how the background is removed from a frame.
type BackgroundMode string

const (
	BackgroundNone     BackgroundMode = "none"
	BackgroundPlane    BackgroundMode = "plane"
	BackgroundLinewise BackgroundMode = "linewise"
)

// ParseBackgroundMode parses a background mode name. Unlike projections,
// an unknown background is an error.
func ParseBackgroundMode(s string) (BackgroundMode, error) {
	switch m := BackgroundMode(strings.ToLower(strings.TrimSpace(s))); m {
	case BackgroundNone, BackgroundPlane, BackgroundLinewise:
		return m, nil
	case "":
		return BackgroundNone, nil
	default:
		return "", fmt.Errorf("%w: background %q", ErrUnsupportedMode, s)
	}
}

// ProjectionMode selects how a complex frame is reduced for display.
type ProjectionMode string

const (
	ProjectRe      ProjectionMode = "re"
	ProjectIm      ProjectionMode = "im"
	ProjectAbs     ProjectionMode = "abs"
	ProjectArg     ProjectionMode = "arg (b/w)"
	ProjectArgHue  ProjectionMode = "arg (hue)"
	ProjectComplex ProjectionMode = "complex"
	ProjectAbs2    ProjectionMode = "abs^2"
	ProjectLogAbs  ProjectionMode = "log(abs)"
)

// ProjectionModes lists every recognized projection in display order.
var ProjectionModes = []ProjectionMode{
	ProjectRe, ProjectIm, ProjectAbs, ProjectArg, ProjectArgHue, ProjectComplex, ProjectAbs2, ProjectLogAbs,
}

// ParseProjectionMode parses a projection name. Anything unrecognized falls
// back to ProjectRe.
func ParseProjectionMode(s string) ProjectionMode {
	m := ProjectionMode(strings.TrimSpace(s))
	for _, known := range ProjectionModes {
		if m == known {
			return m
		}
	}
	return ProjectRe
}

// ProcessingFlags selects the pipeline stages for one call. Build it with
// NewProcessingFlags; the zero value disables every stage.
type ProcessingFlags struct {
	Background BackgroundMode
	Sobel      bool
	Normal     bool
	Laplace    bool
	Gaussian   bool
	FFT        bool

	// FFTShift moves the zero frequency to the centre after the transform
	FFTShift bool

	// GaussianWidthNM is the physical blur sigma; 0 disables the blur
	GaussianWidthNM float64

	Projection ProjectionMode

	// ScanRange is required by the distance-aware stages (normal, gaussian, fft)
	ScanRange ScanRange
}

// FlagOption configures ProcessingFlags during construction.
type FlagOption func(*ProcessingFlags)

// NewProcessingFlags builds an immutable flag set. Unset fields default to no
// background, every stage off and the "re" projection.
func NewProcessingFlags(opts ...FlagOption) ProcessingFlags {
	f := ProcessingFlags{
		Background: BackgroundNone,
		Projection: ProjectRe,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func WithBackground(m BackgroundMode) FlagOption {
	return func(f *ProcessingFlags) { f.Background = m }
}

func WithSobel(on bool) FlagOption {
	return func(f *ProcessingFlags) { f.Sobel = on }
}

func WithNormal(on bool) FlagOption {
	return func(f *ProcessingFlags) { f.Normal = on }
}

func WithLaplace(on bool) FlagOption {
	return func(f *ProcessingFlags) { f.Laplace = on }
}

// WithGaussian enables the blur with the given physical width.
func WithGaussian(on bool, widthNM float64) FlagOption {
	return func(f *ProcessingFlags) {
		f.Gaussian = on
		f.GaussianWidthNM = widthNM
	}
}

// WithFFT enables the Fourier transform, optionally centring zero frequency.
func WithFFT(on, shift bool) FlagOption {
	return func(f *ProcessingFlags) {
		f.FFT = on
		f.FFTShift = shift
	}
}

// WithProjection sets the projection from its display name.
func WithProjection(name string) FlagOption {
	return func(f *ProcessingFlags) { f.Projection = ParseProjectionMode(name) }
}

func WithScanRange(r ScanRange) FlagOption {
	return func(f *ProcessingFlags) { f.ScanRange = r }
}

// DistanceAware reports whether an enabled stage needs the scan range.
func (f ProcessingFlags) DistanceAware() bool {
	return f.Normal || (f.Gaussian && f.GaussianWidthNM != 0) || f.FFT
}

// Validate checks the flag set once, before any stage runs.
func (f ProcessingFlags) Validate() error {
	if _, err := ParseBackgroundMode(string(f.Background)); err != nil {
		return err
	}
	if f.Gaussian && (f.GaussianWidthNM < 0 || math.IsNaN(f.GaussianWidthNM) || math.IsInf(f.GaussianWidthNM, 0)) {
		return fmt.Errorf("%w: gaussian width %g nm", ErrInvalidParameter, f.GaussianWidthNM)
	}
	if f.DistanceAware() {
		if err := f.ScanRange.Validate(); err != nil {
			return err
		}
	}
	return nil
}
