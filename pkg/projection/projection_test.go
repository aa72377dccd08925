package projection

import (
	"math"
	"math/cmplx"
	"testing"

	"spmview/internal/models"
)

const tolerance = 1e-12

var testRange = models.ScanRange{Width: 1, Height: 1}

func complexFrame() models.Frame {
	data := []complex128{3 + 4i, -1, 0, 2i, -2 - 2i, 0.5}
	return models.NewComplexFrame(data, 3, 2, testRange)
}

// TestProjectScalarModes checks each real-valued projection against cmplx
func TestProjectScalarModes(t *testing.T) {
	frame := complexFrame()
	tests := []struct {
		mode models.ProjectionMode
		want func(complex128) float64
	}{
		{models.ProjectRe, func(c complex128) float64 { return real(c) }},
		{models.ProjectIm, func(c complex128) float64 { return imag(c) }},
		{models.ProjectAbs, cmplx.Abs},
		{models.ProjectArg, cmplx.Phase},
		{models.ProjectAbs2, func(c complex128) float64 { return cmplx.Abs(c) * cmplx.Abs(c) }},
		{models.ProjectLogAbs, func(c complex128) float64 { return math.Log(cmplx.Abs(c)) }},
		{"no such mode", func(c complex128) float64 { return real(c) }},
	}

	for _, tt := range tests {
		out, err := Project(frame, tt.mode)
		if err != nil {
			t.Fatalf("%s: Project failed: %v", tt.mode, err)
		}
		if out.Kind != models.Real {
			t.Fatalf("%s: expected real output, got %s", tt.mode, out.Kind)
		}
		for i, c := range frame.Complex {
			want := tt.want(c)
			got := out.Real[i]
			if math.IsInf(want, -1) {
				if !math.IsInf(got, -1) {
					t.Errorf("%s pixel %d: expected -Inf, got %f", tt.mode, i, got)
				}
				continue
			}
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("%s pixel %d: expected %f, got %f", tt.mode, i, want, got)
			}
		}
	}
}

// TestProjectAbsProperties checks non-negativity and abs^2 == abs*abs
func TestProjectAbsProperties(t *testing.T) {
	frame := complexFrame()
	abs, _ := Project(frame, models.ProjectAbs)
	abs2, _ := Project(frame, models.ProjectAbs2)
	for i := range abs.Real {
		if abs.Real[i] < 0 {
			t.Errorf("Pixel %d: negative magnitude %f", i, abs.Real[i])
		}
		if math.Abs(abs2.Real[i]-abs.Real[i]*abs.Real[i]) > 1e-9 {
			t.Errorf("Pixel %d: abs^2 %f != abs*abs %f", i, abs2.Real[i], abs.Real[i]*abs.Real[i])
		}
	}
}

// TestProjectRealFrame checks the degenerate behaviour on real input
func TestProjectRealFrame(t *testing.T) {
	frame := models.NewRealFrame([]float64{2, -3, 0}, 3, 1, testRange)

	re, _ := Project(frame, models.ProjectRe)
	re.Real[0] = 99
	if frame.Real[0] != 2 {
		t.Errorf("re projection aliases its input")
	}

	im, _ := Project(frame, models.ProjectIm)
	arg, _ := Project(frame, models.ProjectArg)
	logAbs, _ := Project(frame, models.ProjectLogAbs)
	for i := range frame.Real {
		if im.Real[i] != 0 {
			t.Errorf("im pixel %d: expected 0, got %f", i, im.Real[i])
		}
	}
	if arg.Real[0] != 0 || arg.Real[1] != math.Pi || arg.Real[2] != 0 {
		t.Errorf("Unexpected phases %v", arg.Real)
	}
	if math.Abs(logAbs.Real[1]-math.Log(3)) > tolerance || !math.IsInf(logAbs.Real[2], -1) {
		t.Errorf("Unexpected log(abs) %v", logAbs.Real)
	}
}

// TestProjectHue checks the colour encodings
func TestProjectHue(t *testing.T) {
	// pure positive real at full magnitude is red, half magnitude is darker
	frame := models.NewComplexFrame([]complex128{2, 1, 0, 2i}, 4, 1, testRange)

	out, err := Project(frame, models.ProjectArgHue)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if out.Kind != models.RGB || len(out.RGB) != 12 {
		t.Fatalf("Expected RGB frame with 12 values, got %s with %d", out.Kind, len(out.RGB))
	}
	expectRGB(t, "arg (hue) full", out.RGB[0:3], 1, 0, 0)
	expectRGB(t, "arg (hue) half", out.RGB[3:6], 0.5, 0, 0)
	expectRGB(t, "arg (hue) zero", out.RGB[6:9], 0, 0, 0)
	// phase pi/2 is hue 90: yellow-green
	expectRGB(t, "arg (hue) 90deg", out.RGB[9:12], 0.5, 1, 0)

	out, err = Project(frame, models.ProjectComplex)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	expectRGB(t, "complex full", out.RGB[0:3], 1, 0, 0)
	// half magnitude: s=0.5 v=0.5
	expectRGB(t, "complex half", out.RGB[3:6], 0.5, 0.25, 0.25)
}

// TestHue checks phase to degree mapping
func TestHue(t *testing.T) {
	tests := []struct {
		c    complex128
		want float64
	}{
		{1, 0},
		{1i, 90},
		{-1, 180},
		{-1i, 270},
	}
	for _, tt := range tests {
		if got := Hue(tt.c); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Hue(%v) = %f, want %f", tt.c, got, tt.want)
		}
	}
}

func expectRGB(t *testing.T, name string, got []float64, r, g, b float64) {
	t.Helper()
	if math.Abs(got[0]-r) > 1e-9 || math.Abs(got[1]-g) > 1e-9 || math.Abs(got[2]-b) > 1e-9 {
		t.Errorf("%s: expected (%g,%g,%g), got (%g,%g,%g)", name, r, g, b, got[0], got[1], got[2])
	}
}
