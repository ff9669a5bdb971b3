// Package http provides http transport for proof detection and verification
package http

import (
	stdhttp "net/http"

	"skillproof/internal/modkit/httpkit"
	"skillproof/internal/services/api/provenance/domain"
)

// Register mounts provenance endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// classify without I/O
	httpkit.PostJSON[domain.ProofInput](r, "/detect", h.detect)

	// classify then check against the issuing platform
	httpkit.PostJSON[domain.ProofInput](r, "/verify", h.verify)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /provenance/detect Provenance provenanceDetect
// @Summary Classify a proof reference
// @Tags Provenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.ProofInput true "Proof"
// @Success 200 {object} provenance.Classification "ok"
// @Failure 400 {object} httpkit.Envelope "invalid payload"
// @Router /provenance/detect [post]
func (h *handlers) detect(r *stdhttp.Request, in domain.ProofInput) (any, error) {
	return h.svc.Detect(r.Context(), in.ProofRef), nil
}

// swagger:route POST /provenance/verify Provenance provenanceVerify
// @Summary Verify a proof reference
// @Description Checkable references on a supported platform are looked up; everything else is unchecked
// @Tags Provenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.ProofInput true "Proof"
// @Success 200 {object} domain.Outcome "ok"
// @Failure 429 {object} httpkit.Envelope "platform rate limit"
// @Failure 503 {object} httpkit.Envelope "platform unavailable"
// @Router /provenance/verify [post]
func (h *handlers) verify(r *stdhttp.Request, in domain.ProofInput) (any, error) {
	return h.svc.Verify(r.Context(), in.ProofRef)
}
