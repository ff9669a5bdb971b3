package module

import (
	"time"

	"skillproof/internal/platform/config"
)

// Options controls proof verification and the platform clients
type Options struct {
	// GitHub client
	GitHubTokensCSV  string
	GitHubBaseURL    string
	GitHubMaxRetries int
	GitHubRetryBase  time.Duration

	// package registries
	NPMBaseURL  string
	PyPIBaseURL string

	UserAgent string
	Timeout   time.Duration

	// inbound concurrency for the probing endpoints
	MaxInflight int
	Backlog     int
	BacklogWait time.Duration
}

// FromConfig reads CORE_VERIFY_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	vc := cfg.Prefix("CORE_VERIFY_")
	return Options{
		GitHubTokensCSV:  vc.MayString("GITHUB_TOKENS", ""),
		GitHubBaseURL:    vc.MayString("GITHUB_BASE_URL", ""),
		GitHubMaxRetries: vc.MayInt("GITHUB_MAX_RETRIES", 3),
		GitHubRetryBase:  vc.MayDuration("GITHUB_RETRY_BASE", 500*time.Millisecond),
		NPMBaseURL:       vc.MayString("NPM_BASE_URL", ""),
		PyPIBaseURL:      vc.MayString("PYPI_BASE_URL", ""),
		UserAgent:        vc.MayString("USER_AGENT", "skillproof-verify"),
		Timeout:          vc.MayDuration("TIMEOUT", 10*time.Second),
		MaxInflight:      vc.MayInt("MAX_INFLIGHT", 8),
		Backlog:          vc.MayInt("BACKLOG", 32),
		BacklogWait:      vc.MayDuration("BACKLOG_WAIT", 5*time.Second),
	}
}
