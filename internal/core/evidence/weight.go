package evidence

import "skillproof/internal/core/provenance"

// MaxWeight is the largest value Weight can return
const MaxWeight = 1.0

// NoPlatformMultiplier applies when the proof ref could not be classified at all
const NoPlatformMultiplier = 0.1

var baseWeights = map[Kind]float64{
	KindCommit:      1.0,
	KindPackage:     1.0,
	KindDeployment:  0.8,
	KindDocument:    0.5,
	KindLink:        0.4,
	KindManualClaim: 0.2,
}

var confidenceMultipliers = map[provenance.Confidence]float64{
	provenance.ConfidenceHigh:   1.0,
	provenance.ConfidenceMedium: 0.7,
	provenance.ConfidenceLow:    0.4,
}

var verificationMultipliers = map[Verification]float64{
	VerificationUnchecked: 1.0,
	VerificationVerified:  1.0,
	VerificationRefuted:   0.2,
}

// BaseWeight returns the kind weight; unknown kinds weigh as manual claims
func BaseWeight(k Kind) float64 {
	if w, ok := baseWeights[k]; ok {
		return w
	}
	return baseWeights[KindManualClaim]
}

// PlatformMultiplier scales by how trustworthy the detected reference is
func PlatformMultiplier(d provenance.Detected) float64 {
	if d.Platform == provenance.PlatformNone || d.Platform == "" {
		return NoPlatformMultiplier
	}
	if m, ok := confidenceMultipliers[d.Confidence]; ok {
		return m
	}
	return confidenceMultipliers[provenance.ConfidenceLow]
}

// VerificationMultiplier scales by the external check outcome
func VerificationMultiplier(v Verification) float64 {
	if m, ok := verificationMultipliers[v]; ok {
		return m
	}
	return verificationMultipliers[VerificationUnchecked]
}

// Weight is the credibility contribution of one item in [0, MaxWeight]
func Weight(ev Evidence, d provenance.Detected) float64 {
	w := BaseWeight(ev.Kind) * VerificationMultiplier(ev.Verification) * PlatformMultiplier(d)
	switch {
	case w < 0:
		return 0
	case w > MaxWeight:
		return MaxWeight
	}
	return w
}
