// Package pipeline runs the SPM processing stages in their fixed order and
// summarizes the result for display.
package pipeline

import (
	"fmt"

	"spmview/internal/models"
	"spmview/pkg/background"
	"spmview/pkg/projection"
	"spmview/pkg/spatial"
	"spmview/pkg/spectral"
	"spmview/pkg/statistics"
)

// Stage names, in execution order.
const (
	StageBackground = "background"
	StageSobel      = "sobel"
	StageNormal     = "normal"
	StageLaplace    = "laplace"
	StageGaussian   = "gaussian"
	StageFFT        = "fft"
	StageProjection = "projection"
	StageStatistics = "statistics"
)

// Result is the displayable output of one Process call.
type Result struct {
	// Frame is the projected output: real, or RGB for the hue projections
	Frame models.Frame

	// Stats summarizes Frame
	Stats *statistics.Record

	// Reciprocal is set when the Fourier transform ran
	Reciprocal *spectral.Reciprocal

	// Stages lists the stages that ran, in order
	Stages []string
}

// stage is one optional step of the pipeline.
type stage struct {
	name    string
	enabled func(models.ProcessingFlags) bool
	run     func(*run) error
}

// run is the in-flight state of a single Process call.
type run struct {
	flags      models.ProcessingFlags
	frame      models.Frame
	reciprocal *spectral.Reciprocal
}

// stages is the authoritative processing order. It is not configurable:
// background -> sobel -> normal -> laplace -> gaussian -> fft -> projection.
var stages = []stage{
	{
		name:    StageBackground,
		enabled: func(f models.ProcessingFlags) bool { return f.Background != "" && f.Background != models.BackgroundNone },
		run: func(r *run) (err error) {
			r.frame, err = background.Subtract(r.frame, r.flags.Background)
			return err
		},
	},
	{
		name:    StageSobel,
		enabled: func(f models.ProcessingFlags) bool { return f.Sobel },
		run: func(r *run) (err error) {
			r.frame, err = spatial.Gradient(r.frame)
			return err
		},
	},
	{
		name:    StageNormal,
		enabled: func(f models.ProcessingFlags) bool { return f.Normal },
		run: func(r *run) (err error) {
			r.frame, err = spatial.NormalZ(r.frame)
			return err
		},
	},
	{
		name:    StageLaplace,
		enabled: func(f models.ProcessingFlags) bool { return f.Laplace },
		run: func(r *run) (err error) {
			r.frame, err = spatial.Laplacian(r.frame)
			return err
		},
	},
	{
		name:    StageGaussian,
		enabled: func(f models.ProcessingFlags) bool { return f.Gaussian },
		run: func(r *run) (err error) {
			r.frame, err = spatial.GaussianBlur(r.frame, r.flags.GaussianWidthNM)
			return err
		},
	},
	{
		name:    StageFFT,
		enabled: func(f models.ProcessingFlags) bool { return f.FFT },
		run: func(r *run) error {
			out, k, err := spectral.FFT2(r.frame)
			if err != nil {
				return err
			}
			if r.flags.FFTShift {
				if out, err = spectral.Shift(out); err != nil {
					return err
				}
			}
			r.frame, r.reciprocal = out, &k
			return nil
		},
	},
	{
		name:    StageProjection,
		enabled: func(models.ProcessingFlags) bool { return true },
		run: func(r *run) (err error) {
			r.frame, err = projection.Project(r.frame, r.flags.Projection)
			return err
		},
	},
}

// Pipeline processes frames. It holds no state between calls and is safe
// for concurrent use.
type Pipeline struct{}

// New returns a Pipeline.
func New() *Pipeline {
	return &Pipeline{}
}

// Process runs every enabled stage on frame in the fixed order and computes
// statistics on the final array. The input frame is never modified.
//
// When flags carry a scan range it replaces the frame's own range. The first
// failing stage aborts the call; its error wraps the stage name and keeps
// the models sentinel for errors.Is.
func (p *Pipeline) Process(frame models.Frame, flags models.ProcessingFlags) (*Result, error) {
	if err := flags.Validate(); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := frame.Validate(); err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	if frame.Kind != models.Real {
		return nil, fmt.Errorf("input: %w: expected a real frame, got %s", models.ErrInvalidFrameShape, frame.Kind)
	}

	r := &run{flags: flags, frame: frame}
	if flags.ScanRange != (models.ScanRange{}) {
		r.frame.Range = flags.ScanRange
	}

	result := &Result{}
	for _, s := range stages {
		if !s.enabled(flags) {
			continue
		}
		if err := s.run(r); err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		result.Stages = append(result.Stages, s.name)
	}

	stats, err := statistics.Compute(r.frame)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StageStatistics, err)
	}

	result.Frame = r.frame
	result.Stats = stats
	result.Reciprocal = r.reciprocal
	return result, nil
}
