// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/advancehq/salary-advance/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Monetary intermediates must be rounded at the same points as final
// output, otherwise the final amortization payment drifts.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Clamp limits a value to the inclusive range [lower, upper].
func Clamp(val, lower, upper float64) float64 {
	if val < lower {
		return lower
	}
	if val > upper {
		return upper
	}
	return val
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
