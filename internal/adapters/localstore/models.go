package localstore

import (
	"time"

	"skillproof/internal/core/evidence"
	pstr "skillproof/internal/platform/strings"
	ptime "skillproof/internal/platform/time"
	"skillproof/internal/services/evidence/domain"
)

type profileRow struct {
	ID        string    `gorm:"primaryKey;size:64"`
	OwnerID   string    `gorm:"size:64;index"`
	Handle    string    `gorm:"size:255"`
	IsPublic  bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (profileRow) TableName() string { return "profiles" }

type skillRow struct {
	ID        string    `gorm:"primaryKey;size:64"`
	ProfileID string    `gorm:"size:64;index"`
	Name      string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (skillRow) TableName() string { return "skills" }

type evidenceRow struct {
	ID           string `gorm:"primaryKey;size:64"`
	ProfileID    string `gorm:"size:64;index"`
	Kind         string `gorm:"size:32"`
	ProofRef     string `gorm:"type:text"`
	OccurredAt   *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	Verification string    `gorm:"size:16;default:unchecked"`
	Project      *string   `gorm:"size:255"`
}

func (evidenceRow) TableName() string { return "evidence" }

type evidenceSkillRow struct {
	EvidenceID string `gorm:"primaryKey;size:64"`
	SkillID    string `gorm:"primaryKey;size:64;index"`
}

func (evidenceSkillRow) TableName() string { return "evidence_skills" }

func (r profileRow) domain() domain.Profile {
	return domain.Profile{ID: r.ID, OwnerID: r.OwnerID, Handle: r.Handle, IsPublic: r.IsPublic, CreatedAt: r.CreatedAt.UTC()}
}

func (r skillRow) domain() domain.Skill {
	return domain.Skill{ID: r.ID, ProfileID: r.ProfileID, Name: r.Name, CreatedAt: r.CreatedAt.UTC()}
}

func (r evidenceRow) domain(refs []string) evidence.Evidence {
	ev := evidence.Evidence{
		ID:           r.ID,
		Kind:         evidence.ParseKind(r.Kind),
		ProofRef:     r.ProofRef,
		SkillRefs:    refs,
		CreatedAt:    r.CreatedAt.UTC(),
		Verification: evidence.ParseVerification(r.Verification),
		Project:      pstr.Deref(r.Project),
	}
	ev.OccurredAt = ptime.Value(r.OccurredAt).UTC()
	return ev
}

func fromEvidence(profileID string, ev evidence.Evidence) evidenceRow {
	row := evidenceRow{
		ID:           ev.ID,
		ProfileID:    profileID,
		Kind:         string(evidence.ParseKind(string(ev.Kind))),
		ProofRef:     ev.ProofRef,
		CreatedAt:    ev.CreatedAt,
		Verification: string(evidence.ParseVerification(string(ev.Verification))),
		Project:      pstr.Ptr(ev.Project),
	}
	row.OccurredAt = ptime.Ptr(ev.OccurredAt.UTC())
	return row
}
