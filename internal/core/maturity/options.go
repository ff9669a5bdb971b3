package maturity

import (
	"time"

	"skillproof/internal/core/evidence"
)

// Factor weights sum to 1
const (
	WeightTime    = 0.30
	WeightVolume  = 0.35
	WeightQuality = 0.25
	WeightRecency = 0.10
)

// Options are the tuning constants of the saturating curves
type Options struct {
	// TimeScaleDays is the span at which Time reaches 1-1/e
	TimeScaleDays float64
	// VolumeScale is the distinct item count at which Volume reaches 1-1/e
	VolumeScale float64
	// FreshDays is the window in which Recency stays at 1
	FreshDays float64
	// RecencyScaleDays is the decay constant after the fresh window
	RecencyScaleDays float64

	// Now is the clock recency is measured against
	Now func() time.Time
	// Detector classifies proof refs; nil uses the default matchers
	Detector evidence.Detector
}

// DefaultOptions returns the stock tuning
func DefaultOptions() Options {
	return Options{
		TimeScaleDays:    365,
		VolumeScale:      3,
		FreshDays:        30,
		RecencyScaleDays: 180,
		Now:              time.Now,
		Detector:         evidence.DefaultDetector{},
	}
}

// withDefaults fills zero or invalid fields from DefaultOptions
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.TimeScaleDays <= 0 {
		o.TimeScaleDays = d.TimeScaleDays
	}
	if o.VolumeScale <= 0 {
		o.VolumeScale = d.VolumeScale
	}
	if o.FreshDays <= 0 {
		o.FreshDays = d.FreshDays
	}
	if o.RecencyScaleDays <= 0 {
		o.RecencyScaleDays = d.RecencyScaleDays
	}
	if o.Now == nil {
		o.Now = d.Now
	}
	if o.Detector == nil {
		o.Detector = d.Detector
	}
	return o
}
