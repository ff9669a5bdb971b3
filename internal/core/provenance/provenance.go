// Package provenance classifies proof references into the platform that issued them.
// Classification is a pure function of the input string: an ordered list of matchers
// runs over a prepared reference and the first one that recognises it wins
package provenance

// Platform is the issuing platform of a proof reference
type Platform string

const (
	// PlatformSourceControl is a repository host (github, gitlab, ...)
	PlatformSourceControl Platform = "source_control"
	// PlatformDeployment is a hosted deployment (vercel, netlify, ...)
	PlatformDeployment Platform = "deployment"
	// PlatformRegistry is a package registry (npm, pypi, crates, ...)
	PlatformRegistry Platform = "package_registry"
	// PlatformHash is a bare content hash
	PlatformHash Platform = "hash_proof"
	// PlatformGenericLink is any other valid URL
	PlatformGenericLink Platform = "generic_link"
	// PlatformNone is empty or unparsable input
	PlatformNone Platform = "none"
)

// Confidence is how certain the detector is that a reference is stable and authentic
type Confidence string

const (
	// ConfidenceHigh marks immutable or tamper evident references
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium marks stable but mutable references
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow marks anything else
	ConfidenceLow Confidence = "low"
)

// Detected is the result of classifying one proof reference
type Detected struct {
	Platform    Platform   `json:"platform"`
	Confidence  Confidence `json:"confidence"`
	CanonicalID *string    `json:"canonical_id"`
	// Host scopes the canonical id (folded host or registry ecosystem), empty for none
	Host string `json:"host,omitempty"`
}

// ID returns the canonical id or "" when there is none
func (d Detected) ID() string {
	if d.CanonicalID == nil {
		return ""
	}
	return *d.CanonicalID
}

// DedupeKey returns a comparable key for resubmission detection.
// ok is false when the reference has no canonical id
func (d Detected) DedupeKey() (key string, ok bool) {
	if d.CanonicalID == nil || *d.CanonicalID == "" {
		return "", false
	}
	return string(d.Platform) + "|" + d.Host + "|" + *d.CanonicalID, true
}

// Equal reports whether two detections carry the same classification
func (d Detected) Equal(o Detected) bool {
	return d.Platform == o.Platform &&
		d.Confidence == o.Confidence &&
		d.Host == o.Host &&
		d.ID() == o.ID() &&
		(d.CanonicalID == nil) == (o.CanonicalID == nil)
}

func none() Detected {
	return Detected{Platform: PlatformNone, Confidence: ConfidenceLow}
}

func detected(p Platform, c Confidence, host, id string) Detected {
	return Detected{Platform: p, Confidence: c, Host: host, CanonicalID: &id}
}

// Matcher recognises one family of proof references
type Matcher interface {
	// Name identifies the matcher in tests and logs
	Name() string
	// Match returns a detection and true when the reference belongs to this matcher
	Match(r Ref) (Detected, bool)
}

// Detector runs matchers in precedence order
type Detector struct {
	matchers []Matcher
}

// New builds a Detector over the given matchers; order is precedence
func New(ms ...Matcher) *Detector {
	return &Detector{matchers: append([]Matcher(nil), ms...)}
}

// Default returns the standard precedence:
// source control, deployment, registry, content hash, generic link
func Default() *Detector {
	return New(
		SourceControlMatcher(),
		DeploymentMatcher(),
		RegistryMatcher(),
		HashMatcher(),
		GenericLinkMatcher(),
	)
}

// Matchers returns the matcher names in precedence order
func (d *Detector) Matchers() []string {
	out := make([]string, 0, len(d.matchers))
	for _, m := range d.matchers {
		out = append(out, m.Name())
	}
	return out
}

// Detect classifies ref. It never fails: unknown input yields PlatformNone
func (d *Detector) Detect(ref string) Detected {
	r := Prepare(ref)
	if r.Empty() {
		return none()
	}
	for _, m := range d.matchers {
		if det, ok := m.Match(r); ok {
			return det
		}
	}
	return none()
}

// std is built once and never mutated
var std = Default()

// Detect classifies ref with the default detector
func Detect(ref string) Detected { return std.Detect(ref) }
