package evaluation

import "math"

// ToPercentage converts a raw score to the 0..100 scale. The second
// return value is false when the maximum is missing or non-positive,
// meaning the record carries no usable percentage.
func ToPercentage(score, maxScore float64) (float64, bool) {
	if maxScore <= 0 {
		return 0, false
	}
	return score / maxScore * 100, true
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Round1 rounds to one decimal place, the precision used in summaries.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
