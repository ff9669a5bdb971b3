// Package domain holds DTOs and ports for credibility scoring
package domain

import (
	"time"

	"skillproof/internal/core/credibility"
	"skillproof/internal/core/maturity"
	"skillproof/internal/core/timeline"
)

// SkillCredibility is the explainable score of one declared skill
type SkillCredibility struct {
	Name string `json:"name" example:"Go"`
	maturity.Result
}

// ProfileCredibility is the profile summary with its per skill results
type ProfileCredibility struct {
	ProfileID  string              `json:"profile_id" example:"6f1c2d3e-0000-4000-8000-000000000001"`
	Handle     string              `json:"handle" example:"octocat"`
	Summary    credibility.Profile `json:"summary"`
	Skills     []SkillCredibility  `json:"skills"`
	ComputedAt time.Time           `json:"computed_at" example:"2026-06-01T12:00:00Z"`
}

// SkillTimeline is the narrated evidence history of one skill
type SkillTimeline struct {
	SkillID   string           `json:"skill_id" example:"6f1c2d3e-0000-4000-8000-0000000000a1"`
	SkillName string           `json:"skill_name" example:"Go"`
	Entries   []timeline.Entry `json:"entries"`
}

// ScoreSnapshot is one append only analytics row for a computed skill score
type ScoreSnapshot struct {
	ProfileID  string
	Result     maturity.Result
	ComputedAt time.Time
}
