// Package service classifies proof references and checks them against their platforms
package service

import (
	"context"

	"skillproof/internal/core/evidence"
	"skillproof/internal/core/provenance"
	perr "skillproof/internal/platform/errors"
	"skillproof/internal/platform/logger"
	"skillproof/internal/services/api/provenance/domain"
)

// Service defines the provenance service contract
type Service interface {
	domain.ServicePort
}

// NamedProbe labels a probe for outcomes and logs
type NamedProbe struct {
	Name  string
	Probe domain.Probe
}

// Svc implements the provenance service
type Svc struct {
	detector *provenance.Detector
	probes   []NamedProbe
}

// New constructs the service; the first probe that supports a reference checks it
func New(detector *provenance.Detector, probes ...NamedProbe) *Svc {
	if detector == nil {
		detector = provenance.Default()
	}
	return &Svc{detector: detector, probes: probes}
}

// Detect classifies ref without any I/O
func (s *Svc) Detect(_ context.Context, ref string) provenance.Classification {
	return s.detector.Classify(ref)
}

// Verify classifies ref and, when it is checkable and a probe supports it, confirms it exists.
// Unsupported references come back unchecked without I/O
func (s *Svc) Verify(ctx context.Context, ref string) (domain.Outcome, error) {
	out := domain.Outcome{
		Classification: s.detector.Classify(ref),
		Status:         evidence.VerificationUnchecked,
	}
	if !out.Checkable {
		return out, nil
	}
	np, ok := s.probe(out.Detected)
	if !ok {
		return out, nil
	}
	out.Probe = np.Name

	found, url, err := np.Probe.Check(ctx, out.Detected)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("probe", np.Name).Str("canonical_id", out.ID()).Msg("proof check failed")
		if _, ok := perr.As(err); ok {
			return domain.Outcome{}, err
		}
		return domain.Outcome{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "proof platform unavailable")
	}
	if found {
		out.Status, out.URL = evidence.VerificationVerified, url
	} else {
		out.Status = evidence.VerificationRefuted
	}
	logger.C(ctx).Debug().Str("probe", np.Name).Str("status", string(out.Status)).Msg("proof checked")
	return out, nil
}

func (s *Svc) probe(d provenance.Detected) (NamedProbe, bool) {
	for _, np := range s.probes {
		if np.Probe != nil && np.Probe.Supports(d) {
			return np, true
		}
	}
	return NamedProbe{}, false
}
