// Package projection reduces complex frames to real or colour frames for
// display.
package projection

import (
	"fmt"
	"math"
	"math/cmplx"

	colorful "github.com/lucasb-eyer/go-colorful"

	"spmview/internal/models"
)

// Project reduces frame according to mode. Real frames are handled as
// complex frames with a zero imaginary part, so every mode gives the same
// numbers either way; "re" on a real frame is a plain copy.
//
// The hue modes ("complex" and "arg (hue)") return an RGB frame, all others
// a real frame. Unrecognized modes are treated as "re".
func Project(frame models.Frame, mode models.ProjectionMode) (models.Frame, error) {
	if err := frame.Validate(); err != nil {
		return models.Frame{}, err
	}
	mode = models.ParseProjectionMode(string(mode))

	switch frame.Kind {
	case models.Real:
		if mode == models.ProjectRe {
			return frame.Clone(), nil
		}
	case models.Complex:
	default:
		return models.Frame{}, fmt.Errorf("%w: cannot project %s frame", models.ErrInvalidFrameShape, frame.Kind)
	}

	data := frame.AsComplex()
	switch mode {
	case models.ProjectComplex:
		return colorize(data, frame, false), nil
	case models.ProjectArgHue:
		return colorize(data, frame, true), nil
	}

	f := scalar(mode)
	out := make([]float64, len(data))
	for i, c := range data {
		out[i] = f(c)
	}
	return models.NewRealFrame(out, frame.Width, frame.Height, frame.Range), nil
}

// scalar returns the per-pixel reduction for the real-valued modes.
func scalar(mode models.ProjectionMode) func(complex128) float64 {
	switch mode {
	case models.ProjectIm:
		return func(c complex128) float64 { return imag(c) }
	case models.ProjectAbs:
		return cmplx.Abs
	case models.ProjectAbs2:
		return func(c complex128) float64 { return real(c)*real(c) + imag(c)*imag(c) }
	case models.ProjectArg:
		return cmplx.Phase
	case models.ProjectLogAbs:
		// log(0) is -Inf and is passed through
		return func(c complex128) float64 { return math.Log(cmplx.Abs(c)) }
	default:
		return func(c complex128) float64 { return real(c) }
	}
}

// colorize encodes phase as hue and the magnitude, normalized to the largest
// magnitude in the frame, as value. Without saturate the saturation follows
// the magnitude too, so weak pixels fade to gray; with saturate it is 1.
func colorize(data []complex128, frame models.Frame, saturate bool) models.Frame {
	var maxAbs float64
	for _, c := range data {
		maxAbs = math.Max(maxAbs, cmplx.Abs(c))
	}

	out := make([]float64, 3*len(data))
	for i, c := range data {
		var m float64
		if maxAbs > 0 {
			m = cmplx.Abs(c) / maxAbs
		}
		s := m
		if saturate {
			s = 1
		}
		col := colorful.Hsv(Hue(c), s, m)
		out[3*i] = col.R
		out[3*i+1] = col.G
		out[3*i+2] = col.B
	}
	return models.NewRGBFrame(out, frame.Width, frame.Height, frame.Range)
}

// Hue maps the phase of c onto [0, 360) degrees.
func Hue(c complex128) float64 {
	deg := cmplx.Phase(c) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}
