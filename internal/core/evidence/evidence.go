// Package evidence defines evidence items and the weight a single item carries
package evidence

import (
	"strings"
	"time"

	"skillproof/internal/core/provenance"
)

// Kind is the closed set of evidence kinds
type Kind string

const (
	KindCommit      Kind = "code_commit"
	KindDeployment  Kind = "deployment"
	KindPackage     Kind = "package_publish"
	KindDocument    Kind = "document"
	KindLink        Kind = "link"
	KindManualClaim Kind = "manual_claim"
)

// Kinds lists every kind in descending base weight
var Kinds = []Kind{KindCommit, KindPackage, KindDeployment, KindDocument, KindLink, KindManualClaim}

var kindAliases = map[string]Kind{
	"code_commit":     KindCommit,
	"commit":          KindCommit,
	"deployment":      KindDeployment,
	"deploy":          KindDeployment,
	"package_publish": KindPackage,
	"package":         KindPackage,
	"document":        KindDocument,
	"readme":          KindDocument,
	"doc":             KindDocument,
	"link":            KindLink,
	"manual_claim":    KindManualClaim,
	"manual":          KindManualClaim,
}

// ParseKind maps a stored or submitted kind onto the closed set.
// Unknown values become KindManualClaim, the lowest weight
func ParseKind(s string) Kind {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k
	}
	return KindManualClaim
}

// Verification is the outcome of an external proof check
type Verification string

const (
	VerificationUnchecked Verification = "unchecked"
	VerificationVerified  Verification = "verified"
	VerificationRefuted   Verification = "refuted"
)

// ParseVerification maps unknown values to VerificationUnchecked
func ParseVerification(s string) Verification {
	switch v := Verification(strings.ToLower(strings.TrimSpace(s))); v {
	case VerificationVerified, VerificationRefuted:
		return v
	}
	return VerificationUnchecked
}

// Evidence is one submitted proof of skill
type Evidence struct {
	ID           string       `json:"id"`
	Kind         Kind         `json:"kind"`
	ProofRef     string       `json:"proof_ref"`
	SkillRefs    []string     `json:"skill_refs,omitempty"`
	OccurredAt   time.Time    `json:"occurred_at,omitzero"`
	CreatedAt    time.Time    `json:"created_at,omitzero"`
	Verification Verification `json:"verification,omitempty"`
	Project      string       `json:"project,omitempty"`
}

// When returns the effective timestamp: OccurredAt, else CreatedAt.
// ok is false when neither is set
func (e Evidence) When() (t time.Time, ok bool) {
	switch {
	case !e.OccurredAt.IsZero():
		return e.OccurredAt, true
	case !e.CreatedAt.IsZero():
		return e.CreatedAt, true
	}
	return time.Time{}, false
}

// References reports whether the item claims skillID.
// Items without skill refs are treated as pre-filtered by the caller
func (e Evidence) References(skillID string) bool {
	if len(e.SkillRefs) == 0 {
		return true
	}
	for _, s := range e.SkillRefs {
		if s == skillID {
			return true
		}
	}
	return false
}

// Detector classifies proof references
type Detector interface {
	Detect(ref string) provenance.Detected
}

// DefaultDetector is the package level provenance detector
type DefaultDetector struct{}

// Detect delegates to provenance.Detect
func (DefaultDetector) Detect(ref string) provenance.Detected { return provenance.Detect(ref) }

// Annotated is an evidence item with its derived detection and weight
type Annotated struct {
	Evidence
	Detected provenance.Detected `json:"detected"`
	Weight   float64             `json:"weight"`
}

// Annotate derives detection and weight for each item, keeping input order
func Annotate(d Detector, items []Evidence) []Annotated {
	if d == nil {
		d = DefaultDetector{}
	}
	out := make([]Annotated, 0, len(items))
	for _, ev := range items {
		det := d.Detect(ev.ProofRef)
		out = append(out, Annotated{Evidence: ev, Detected: det, Weight: Weight(ev, det)})
	}
	return out
}
