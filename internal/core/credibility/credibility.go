// Package credibility rolls per skill results into a profile summary
package credibility

import (
	"math"

	"skillproof/internal/core/maturity"
	"skillproof/internal/core/tier"
)

// Profile is the profile level credibility summary
type Profile struct {
	OverallScore      int       `json:"overall_score"`
	Tier              tier.Tier `json:"tier"`
	ProvenSkillsCount int       `json:"proven_skills_count"`
	TotalSkillsCount  int       `json:"total_skills_count"`
}

// Aggregate summarises skill results. The overall score is the rounded mean of
// skill scores; an empty profile is 0 and Unverified
func Aggregate(results []maturity.Result) Profile {
	p := Profile{Tier: tier.Unverified, TotalSkillsCount: len(results)}
	if len(results) == 0 {
		return p
	}
	sum := 0
	for _, r := range results {
		sum += r.Score
		if r.Tier.AtLeast(tier.Proven) {
			p.ProvenSkillsCount++
		}
	}
	p.OverallScore = int(math.Round(float64(sum) / float64(len(results))))
	p.Tier = tier.FromScore(p.OverallScore)
	return p
}
