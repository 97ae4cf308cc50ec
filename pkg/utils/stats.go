package utils

import "math"

// Average returns the arithmetic mean of values, 0 when empty.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation (denominator N), 0 when
// empty.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := Average(values)
	var variance float64
	for _, v := range values {
		d := v - avg
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
