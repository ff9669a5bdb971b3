// Package maturity computes the per skill credibility score from an evidence snapshot.
// Compute is pure given its clock: the same evidence in any order yields the same result
package maturity

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"skillproof/internal/core/evidence"
	"skillproof/internal/core/tier"
	perr "skillproof/internal/platform/errors"
)

// SingleSourceCeiling is the highest score a skill with one distinct item can reach
const SingleSourceCeiling = tier.ProvenFloor - 1

// Factors are the four normalised inputs to the score, each in [0,1]
type Factors struct {
	Time    float64 `json:"time"`
	Volume  float64 `json:"volume"`
	Quality float64 `json:"quality"`
	Recency float64 `json:"recency"`
}

// Weighted is the factor blend in [0,1]
func (f Factors) Weighted() float64 {
	return WeightTime*f.Time + WeightVolume*f.Volume + WeightQuality*f.Quality + WeightRecency*f.Recency
}

// Rejection records evidence excluded for not referencing the scored skill
type Rejection struct {
	EvidenceID string `json:"evidence_id"`
	Reason     string `json:"reason"`
}

// Result is the explainable score of one skill
type Result struct {
	SkillID            string      `json:"skill_id"`
	Score              int         `json:"score"`
	Tier               tier.Tier   `json:"tier"`
	Factors            Factors     `json:"factors"`
	EvidenceCount      int         `json:"evidence_count"`
	DistinctCount      int         `json:"distinct_count"`
	SingleSourceCapped bool        `json:"single_source_capped"`
	FirstOccurred      *time.Time  `json:"first_occurred,omitempty"`
	LastOccurred       *time.Time  `json:"last_occurred,omitempty"`
	Rejected           []Rejection `json:"rejected,omitempty"`
}

// Err reports a contract violation when evidence for other skills was passed in
func (r Result) Err() error {
	if len(r.Rejected) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.Rejected))
	for _, rj := range r.Rejected {
		ids = append(ids, rj.EvidenceID)
	}
	return perr.WithField(
		perr.ContractViolationf("%d evidence item(s) do not reference skill %q: %s",
			len(ids), r.SkillID, strings.Join(ids, ", ")),
		"skill_refs",
	)
}

// Engine scores skills; safe for concurrent use
type Engine struct {
	opts Options
}

// New builds an Engine, filling unset options with defaults
func New(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Options returns the effective tuning
func (e *Engine) Options() Options { return e.opts }

// Compute scores skillID from items. It never fails; items that belong to other
// skills are excluded and listed in Result.Rejected
func (e *Engine) Compute(skillID string, items []evidence.Evidence) Result {
	res := Result{SkillID: skillID, Tier: tier.Unverified}
	now := e.opts.Now()

	accepted := make([]evidence.Evidence, 0, len(items))
	for _, ev := range items {
		if !ev.References(skillID) {
			res.Rejected = append(res.Rejected, Rejection{
				EvidenceID: ev.ID,
				Reason:     fmt.Sprintf("skill refs %v do not include %q", ev.SkillRefs, skillID),
			})
			continue
		}
		accepted = append(accepted, ev)
	}
	sort.Slice(res.Rejected, func(i, j int) bool {
		a, b := res.Rejected[i], res.Rejected[j]
		if a.EvidenceID != b.EvidenceID {
			return a.EvidenceID < b.EvidenceID
		}
		return a.Reason < b.Reason
	})

	res.EvidenceCount = len(accepted)
	if len(accepted) == 0 {
		return res
	}

	// duplicates collapse to one group carrying the best weight seen
	groups := make(map[string]float64, len(accepted))
	var first, last time.Time
	dated := false
	for _, a := range evidence.Annotate(e.opts.Detector, accepted) {
		k := groupKey(a)
		if w, ok := groups[k]; !ok || a.Weight > w {
			groups[k] = a.Weight
		}
		if t, ok := a.When(); ok {
			if !dated || t.Before(first) {
				first = t
			}
			if !dated || t.After(last) {
				last = t
			}
			dated = true
		}
	}

	weights := make([]float64, 0, len(groups))
	for _, w := range groups {
		weights = append(weights, w)
	}
	sort.Float64s(weights)
	var sum float64
	for _, w := range weights {
		sum += w
	}
	n := len(weights)
	res.DistinctCount = n

	res.Factors.Volume = saturate(float64(n), e.opts.VolumeScale)
	res.Factors.Quality = clamp01(sum / float64(n) / evidence.MaxWeight)
	if dated {
		f, l := first.UTC(), last.UTC()
		res.FirstOccurred, res.LastOccurred = &f, &l
		res.Factors.Time = saturate(wholeDays(last.Sub(first)), e.opts.TimeScaleDays)
		res.Factors.Recency = e.recency(wholeDays(now.Sub(last)))
	}

	score := int(math.Round(100 * res.Factors.Weighted()))
	score = max(0, min(100, score))
	if n == 1 && score > SingleSourceCeiling {
		score = SingleSourceCeiling
		res.SingleSourceCapped = true
	}
	res.Score = score
	res.Tier = tier.FromScore(score)
	return res
}

func (e *Engine) recency(daysSince float64) float64 {
	if daysSince <= e.opts.FreshDays {
		return 1
	}
	return decay(daysSince-e.opts.FreshDays, e.opts.RecencyScaleDays)
}

// groupKey identifies resubmissions of the same artifact. Items without a
// canonical id fall back to their own id, or their content when the id is blank
func groupKey(a evidence.Annotated) string {
	if k, ok := a.Detected.DedupeKey(); ok {
		return "ref:" + k
	}
	if a.ID != "" {
		return "id:" + a.ID
	}
	t, _ := a.When()
	return fmt.Sprintf("anon:%s|%s|%d", a.Kind, a.ProofRef, t.UnixNano())
}
