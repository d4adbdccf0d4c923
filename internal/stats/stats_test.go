package stats

import (
	"math"
	"testing"
)

func TestMeanStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	if got := Mean(values); got != 5 {
		t.Errorf("Mean() = %v, want 5", got)
	}
	// population std of this classic sample is exactly 2
	if got := StdDev(values); math.Abs(got-2) > 1e-12 {
		t.Errorf("StdDev() = %v, want 2", got)
	}
	if StdDev(nil) != 0 || Mean(nil) != 0 {
		t.Error("empty input should yield 0")
	}
}

func TestPercentileLinearInterpolation(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}
	tests := []struct {
		p, want float64
	}{
		{0, 10},
		{50, 30},
		{95, 48},
		{99, 49.6},
		{100, 50},
		{150, 50},
	}
	for _, tt := range tests {
		if got := Percentile(values, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestQuantileDoesNotMutate(t *testing.T) {
	values := []float64{3, 1, 2}
	_ = Quantile(values, 0.5)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input mutated: %v", values)
	}
}

func TestMaxRound(t *testing.T) {
	if got := Max([]float64{3, -1, 7}); got != 7 {
		t.Errorf("Max() = %v", got)
	}
	if got := Max(nil); got != 0 {
		t.Errorf("Max(nil) = %v", got)
	}
	if got := Round(12.3456, 2); got != 12.35 {
		t.Errorf("Round() = %v", got)
	}
}
