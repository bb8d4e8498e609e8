// Package money holds the float helpers shared by the aggregation views.
// Monetary values accumulate at full precision; rounding happens only here,
// at the point of exposure.
package money

import "math"

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Share returns part/total as a percentage rounded to 2 decimal places.
// A non-positive total yields 0 rather than a division by zero.
func Share(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return Round2(part / total * 100)
}

// SafeAvg returns sum/count rounded to 2 decimal places, or 0 when count
// is zero.
func SafeAvg(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return Round2(sum / float64(count))
}
