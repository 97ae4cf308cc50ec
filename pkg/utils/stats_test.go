package utils

import (
	"math"
	"testing"
)

func TestAverageEmpty(t *testing.T) {
	if got := Average(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %f", got)
	}
}

func TestAverage(t *testing.T) {
	if got := Average([]float64{10, 20}); got != 15 {
		t.Fatalf("expected 15, got %f", got)
	}
}

func TestStdDevEmpty(t *testing.T) {
	if got := StdDev(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %f", got)
	}
}

func TestStdDevSingleValue(t *testing.T) {
	if got := StdDev([]float64{42}); got != 0 {
		t.Fatalf("expected 0 for single value, got %f", got)
	}
}

func TestStdDevPopulation(t *testing.T) {
	// Population formula: denominator N, not N-1.
	got := StdDev([]float64{10, 20})
	if math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected population std dev 5, got %f", got)
	}
}
