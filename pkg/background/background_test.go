package background

import (
	"errors"
	"math"
	"testing"

	"spmview/internal/models"
	"spmview/pkg/spatial"
)

const tolerance = 1e-9

func createTestFrame(width, height int, pattern func(x, y int) float64) models.Frame {
	data := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			data[y*width+x] = pattern(x, y)
		}
	}
	return models.NewRealFrame(data, width, height, models.ScanRange{Width: float64(width), Height: float64(height)})
}

func bumpy(x, y int) float64 {
	fx, fy := float64(x), float64(y)
	return 0.7*fx - 1.9*fy + 12 + math.Sin(fx*0.9)*math.Cos(fy*1.3) + 0.05*fx*fy
}

// TestSubtractNoneIsIdentity verifies exact equality and no aliasing
func TestSubtractNoneIsIdentity(t *testing.T) {
	frame := createTestFrame(7, 5, bumpy)
	out, err := Subtract(frame, models.BackgroundNone)
	if err != nil {
		t.Fatalf("Subtract failed: %v", err)
	}
	for i := range frame.Real {
		if out.Real[i] != frame.Real[i] {
			t.Fatalf("Pixel %d changed: %f -> %f", i, frame.Real[i], out.Real[i])
		}
	}
	out.Real[0]++
	if out.Real[0] == frame.Real[0] {
		t.Errorf("Output shares the input buffer")
	}
}

// TestSubtractPlaneConstant checks the constant frame case
func TestSubtractPlaneConstant(t *testing.T) {
	frame := createTestFrame(4, 4, func(x, y int) float64 { return 5 })
	out, err := Subtract(frame, models.BackgroundPlane)
	if err != nil {
		t.Fatalf("Subtract failed: %v", err)
	}
	for i, v := range out.Real {
		if v != 0 {
			t.Errorf("Pixel %d: expected 0, got %f", i, v)
		}
	}
}

// TestSubtractPlaneZeroesMeanGradient checks both plane invariants
func TestSubtractPlaneZeroesMeanGradient(t *testing.T) {
	frame := createTestFrame(9, 7, bumpy)
	out, err := Subtract(frame, models.BackgroundPlane)
	if err != nil {
		t.Fatalf("Subtract failed: %v", err)
	}

	g, err := spatial.MeanGradient(out)
	if err != nil {
		t.Fatalf("MeanGradient failed: %v", err)
	}
	if math.Abs(real(g)) > tolerance || math.Abs(imag(g)) > tolerance {
		t.Errorf("Expected mean gradient ~0, got %v", g)
	}

	var sum float64
	for _, v := range out.Real {
		sum += v
	}
	if mean := sum / float64(len(out.Real)); math.Abs(mean) > tolerance {
		t.Errorf("Expected mean ~0, got %g", mean)
	}

	// the input frame is untouched
	if frame.Real[0] != bumpy(0, 0) {
		t.Errorf("Input frame was modified")
	}
}

// TestSubtractPlaneRemovesTilt checks that a pure plane vanishes
func TestSubtractPlaneRemovesTilt(t *testing.T) {
	frame := createTestFrame(6, 5, func(x, y int) float64 { return 3*float64(x) + 0.25*float64(y) - 4 })
	out, err := Subtract(frame, models.BackgroundPlane)
	if err != nil {
		t.Fatalf("Subtract failed: %v", err)
	}
	for i, v := range out.Real {
		if math.Abs(v) > tolerance {
			t.Errorf("Pixel %d: expected 0, got %g", i, v)
		}
	}
}

// TestSubtractPlaneNarrow checks offset-only removal for 2-pixel frames
func TestSubtractPlaneNarrow(t *testing.T) {
	frame := createTestFrame(4, 2, func(x, y int) float64 { return float64(x) })
	out, err := Subtract(frame, models.BackgroundPlane)
	if err != nil {
		t.Fatalf("Subtract failed: %v", err)
	}
	want := []float64{-1.5, -0.5, 0.5, 1.5, -1.5, -0.5, 0.5, 1.5}
	for i := range want {
		if out.Real[i] != want[i] {
			t.Errorf("Pixel %d: expected %f, got %f", i, want[i], out.Real[i])
		}
	}
}

// TestSubtractLinewise checks per-row mean removal
func TestSubtractLinewise(t *testing.T) {
	frame := createTestFrame(5, 4, func(x, y int) float64 { return float64(x) + 10*float64(y*y) })
	out, err := Subtract(frame, models.BackgroundLinewise)
	if err != nil {
		t.Fatalf("Subtract failed: %v", err)
	}
	for y := 0; y < 4; y++ {
		var sum float64
		for x := 0; x < 5; x++ {
			v := out.Real[y*5+x]
			sum += v
			if want := float64(x) - 2; math.Abs(v-want) > tolerance {
				t.Errorf("Pixel (%d,%d): expected %f, got %f", x, y, want, v)
			}
		}
		if math.Abs(sum) > tolerance {
			t.Errorf("Row %d mean not removed: sum %g", y, sum)
		}
	}
}

// TestSubtractDegenerate verifies single-row and single-column frames pass through
func TestSubtractDegenerate(t *testing.T) {
	frames := []models.Frame{
		createTestFrame(1, 1, func(x, y int) float64 { return 3 }),
		createTestFrame(6, 1, func(x, y int) float64 { return float64(x) }),
		createTestFrame(1, 6, func(x, y int) float64 { return float64(y) }),
	}
	for _, frame := range frames {
		for _, mode := range []models.BackgroundMode{models.BackgroundPlane, models.BackgroundLinewise} {
			out, err := Subtract(frame, mode)
			if err != nil {
				t.Fatalf("%dx%d %s: unexpected error %v", frame.Width, frame.Height, mode, err)
			}
			for i := range frame.Real {
				if out.Real[i] != frame.Real[i] {
					t.Errorf("%dx%d %s: pixel %d changed", frame.Width, frame.Height, mode, i)
				}
			}
		}
	}
}

// TestSubtractErrors verifies mode and kind validation
func TestSubtractErrors(t *testing.T) {
	frame := createTestFrame(3, 3, bumpy)
	if _, err := Subtract(frame, "polynomial"); !errors.Is(err, models.ErrUnsupportedMode) {
		t.Errorf("Expected ErrUnsupportedMode, got %v", err)
	}

	cplx := models.NewComplexFrame(make([]complex128, 9), 3, 3, frame.Range)
	if _, err := Subtract(cplx, models.BackgroundPlane); !errors.Is(err, models.ErrInvalidFrameShape) {
		t.Errorf("Expected ErrInvalidFrameShape, got %v", err)
	}

	empty := models.NewRealFrame(nil, 0, 0, frame.Range)
	if _, err := Subtract(empty, models.BackgroundNone); !errors.Is(err, models.ErrInvalidFrameShape) {
		t.Errorf("Expected ErrInvalidFrameShape for empty frame, got %v", err)
	}
}
