package module

import (
	"skillproof/internal/core/maturity"
	"skillproof/internal/platform/config"
)

// Options holds the scoring tuning and sink toggle
type Options struct {
	Scoring   maturity.Options
	Snapshots bool
}

// FromConfig reads CORE_SCORING_* settings; unset or non positive curve constants use the defaults
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("CORE_SCORING_")
	d := maturity.DefaultOptions()
	return Options{
		Scoring: maturity.Options{
			TimeScaleDays:    sf.MayFloat64("TIME_SCALE_DAYS", d.TimeScaleDays),
			VolumeScale:      sf.MayFloat64("VOLUME_SCALE", d.VolumeScale),
			FreshDays:        sf.MayFloat64("FRESH_DAYS", d.FreshDays),
			RecencyScaleDays: sf.MayFloat64("RECENCY_SCALE_DAYS", d.RecencyScaleDays),
		},
		Snapshots: sf.MayBool("SNAPSHOTS", true),
	}
}
