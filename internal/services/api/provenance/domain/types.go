// Package domain holds DTOs and ports for proof detection and verification
package domain

import (
	"context"

	"skillproof/internal/core/evidence"
	"skillproof/internal/core/provenance"
)

// ProofInput carries one raw proof reference
type ProofInput struct {
	ProofRef string `json:"proof_ref" validate:"notblank,max=2048" example:"https://github.com/acme/widget/commit/abc1234"`
}

// Outcome is the result of checking a proof against its issuing platform.
// Status reuses the evidence verification states
type Outcome struct {
	provenance.Classification
	Status evidence.Verification `json:"status" example:"verified"`
	URL    string                `json:"url,omitempty" example:"https://github.com/acme/widget/commit/abc1234"`
	Probe  string                `json:"probe,omitempty" example:"github"`
}

// Probe checks one class of detected reference against its platform
type Probe interface {
	Supports(d provenance.Detected) bool
	// Check reports whether the artifact exists and its public url
	Check(ctx context.Context, d provenance.Detected) (found bool, url string, err error)
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Detect(ctx context.Context, ref string) provenance.Classification
	Verify(ctx context.Context, ref string) (Outcome, error)
}
