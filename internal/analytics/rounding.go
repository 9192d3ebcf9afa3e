package analytics

import "math"

// Round1 rounds a percentage to one decimal for display.
func Round1(v float64) float64 {
	return roundHalfUp(v, 1)
}

// roundHalfUp rounds half away from zero at the given digit count.
func roundHalfUp(v float64, digits int) float64 {
	if digits < 0 {
		return v
	}
	scale := math.Pow10(digits)
	x := v * scale
	if x >= 0 {
		return math.Floor(x+0.5) / scale
	}
	return -math.Floor(-x+0.5) / scale
}
