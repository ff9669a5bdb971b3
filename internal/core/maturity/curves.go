package maturity

import (
	"math"
	"time"
)

// saturate is 1-e^(-x/k), 0 for non-positive x
func saturate(x, k float64) float64 {
	if x <= 0 || k <= 0 {
		return 0
	}
	return clamp01(1 - math.Exp(-x/k))
}

// decay is e^(-x/k), 1 for non-positive x
func decay(x, k float64) float64 {
	if x <= 0 {
		return 1
	}
	if k <= 0 {
		return 0
	}
	return clamp01(math.Exp(-x / k))
}

// wholeDays truncates a duration to elapsed days; negative spans count as 0
func wholeDays(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return math.Floor(d.Hours() / 24)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
