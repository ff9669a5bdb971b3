// Package version reports build metadata stamped in by the linker
package version

// BuildInfo identifies a running binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns build metadata for service.
// Stamp with -ldflags "-X skillproof/internal/core/version.version=v0.1.0 -X ...commit=abcd -X ...date=2026-01-01"
func Info(service string) BuildInfo {
	if service == "" {
		service = "skillproof"
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// String renders "service version (commit, date)"
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
