package main

import (
	"errors"
	"testing"

	"spmview/internal/models"
	"spmview/pkg/config"
	"spmview/pkg/statistics"
)

// TestParsePair checks range and percentile parsing
func TestParsePair(t *testing.T) {
	a, b, err := parsePair("100x50.5", "x")
	if err != nil || a != 100 || b != 50.5 {
		t.Errorf("Expected 100, 50.5, got %f, %f, %v", a, b, err)
	}
	a, b, err = parsePair(" 1 , 99 ", ",")
	if err != nil || a != 1 || b != 99 {
		t.Errorf("Expected 1, 99, got %f, %f, %v", a, b, err)
	}

	for _, bad := range []string{"100", "1x2x3", "ax2", "1xb"} {
		if _, _, err := parsePair(bad, "x"); !errors.Is(err, models.ErrInvalidParameter) {
			t.Errorf("parsePair(%q): expected ErrInvalidParameter, got %v", bad, err)
		}
	}
}

// TestDisplayRange checks the percentile and deviation choices
func TestDisplayRange(t *testing.T) {
	stats, err := statistics.ComputeValues([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	if err != nil {
		t.Fatalf("ComputeValues failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Display.PercentileLow, cfg.Display.PercentileHigh = 10, 90
	lo, hi, err := displayRange(stats, cfg)
	if err != nil || lo != 1 || hi != 9 {
		t.Errorf("Expected [1,9], got [%f,%f] %v", lo, hi, err)
	}

	cfg.Display.UseDeviation = true
	cfg.Display.Deviations = 0
	lo, hi, err = displayRange(stats, cfg)
	if err != nil || lo != 4.5 || hi != 4.5 {
		t.Errorf("Expected [4.5,4.5], got [%f,%f] %v", lo, hi, err)
	}
}
