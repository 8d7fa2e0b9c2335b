package utils

import (
	"math"
	"strconv"
)

// RoundToCents rounds a monetary amount to 2 decimals, half up
func RoundToCents(amount float64) float64 {
	return math.Floor(amount*100+0.5) / 100
}

// CeilToInt rounds up to the nearest whole unit, guarding against a zero or
// negative divisor so ROI math never produces NaN or Inf
func CeilToInt(numerator, denominator float64) int {
	if denominator <= 0 {
		return 0
	}
	return int(math.Ceil(numerator / denominator))
}

// ParseFloat converts a string to a float64, returning 0 for empty input
func ParseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return value, nil
}
