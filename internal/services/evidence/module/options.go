package module

import (
	"time"

	"skillproof/internal/platform/config"
)

// Options holds configuration settings for the evidence module
type Options struct {
	StatementTimeout time.Duration
}

// FromConfig reads CORE_EVIDENCE_* settings
func FromConfig(cfg config.Conf) Options {
	ef := cfg.Prefix("CORE_EVIDENCE_")
	return Options{
		StatementTimeout: ef.MayDuration("STATEMENT_TIMEOUT", 5*time.Second),
	}
}
