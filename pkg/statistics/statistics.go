// Package statistics summarizes the values of a processed frame for display
// range selection.
package statistics

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"spmview/internal/models"
)

// Record is the read-only summary of one frame evaluation.
type Record struct {
	Min  float64
	Max  float64
	Mean float64

	// StandardDeviation is the population deviation (divides by N)
	StandardDeviation float64

	// RangeTotal is Max - Min
	RangeTotal float64

	// DataSorted holds every value in ascending order for percentile lookup
	DataSorted []float64
}

// Compute summarizes a frame. Real frames contribute their pixels, complex
// frames their magnitudes and RGB frames every channel value.
func Compute(frame models.Frame) (*Record, error) {
	if err := frame.Validate(); err != nil {
		return nil, err
	}

	var values []float64
	switch frame.Kind {
	case models.Real:
		values = append([]float64(nil), frame.Real...)
	case models.Complex:
		values = make([]float64, len(frame.Complex))
		for i, c := range frame.Complex {
			values[i] = cmplx.Abs(c)
		}
	case models.RGB:
		values = append([]float64(nil), frame.RGB...)
	}
	return fromOwned(values), nil
}

// ComputeValues summarizes a raw buffer. The buffer is not modified.
func ComputeValues(values []float64) (*Record, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values to summarize", models.ErrInvalidFrameShape)
	}
	return fromOwned(append([]float64(nil), values...)), nil
}

// fromOwned takes ownership of values and sorts them in place.
func fromOwned(values []float64) *Record {
	mean, std := stat.PopMeanStdDev(values, nil)
	minV, maxV := floats.Min(values), floats.Max(values)
	sort.Float64s(values)

	return &Record{
		Min:               minV,
		Max:               maxV,
		Mean:              mean,
		StandardDeviation: std,
		RangeTotal:        maxV - minV,
		DataSorted:        values,
	}
}

// Len returns the number of summarized values.
func (r *Record) Len() int {
	return len(r.DataSorted)
}

// PercentileIndex maps p in [0,100] to floor(0.01*p*N), clamped to [0, N-1].
func (r *Record) PercentileIndex(p float64) int {
	n := len(r.DataSorted)
	idx := int(math.Floor(0.01 * p * float64(n)))
	if idx < 0 || math.IsNaN(p) {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}

// Percentile returns the sorted value at PercentileIndex(p).
func (r *Record) Percentile(p float64) float64 {
	return r.DataSorted[r.PercentileIndex(p)]
}

// PercentileRange returns display bounds from two percentiles.
func (r *Record) PercentileRange(lo, hi float64) (float64, float64, error) {
	if lo > hi {
		return 0, 0, fmt.Errorf("%w: percentile range %g > %g", models.ErrInvalidParameter, lo, hi)
	}
	return r.Percentile(lo), r.Percentile(hi), nil
}

// DeviationRange returns [Mean - k*SD, Mean + k*SD] clamped to [Min, Max].
func (r *Record) DeviationRange(k float64) (float64, float64, error) {
	if k < 0 || math.IsNaN(k) {
		return 0, 0, fmt.Errorf("%w: deviation multiplier %g", models.ErrInvalidParameter, k)
	}
	lo := math.Max(r.Min, r.Mean-k*r.StandardDeviation)
	hi := math.Min(r.Max, r.Mean+k*r.StandardDeviation)
	return lo, hi, nil
}
