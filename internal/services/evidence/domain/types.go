// Package domain holds the evidence collaborator types and ports
package domain

import (
	"time"

	"skillproof/internal/core/evidence"
)

// Profile is a developer profile that owns skills and evidence
type Profile struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Handle    string    `json:"handle"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

// Skill is a declared skill on a profile
type Skill struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SkillEvidence pairs a skill with the evidence attached to it
type SkillEvidence struct {
	Skill    Skill               `json:"skill"`
	Evidence []evidence.Evidence `json:"evidence"`
}

// Snapshot is one consistent read of a profile
type Snapshot struct {
	Profile Profile         `json:"profile"`
	Skills  []SkillEvidence `json:"skills"`
}

// Find returns the skill entry with id
func (s Snapshot) Find(skillID string) (SkillEvidence, bool) {
	for _, se := range s.Skills {
		if se.Skill.ID == skillID {
			return se, true
		}
	}
	return SkillEvidence{}, false
}
