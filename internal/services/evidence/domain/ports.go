package domain

import (
	"context"

	"skillproof/internal/core/evidence"
)

// ReaderPort reads the evidence snapshot scoring runs over
type ReaderPort interface {
	FetchEvidenceForSkill(ctx context.Context, skillID string) ([]evidence.Evidence, error)
	FetchAllSkillsForProfile(ctx context.Context, profileID string) ([]Skill, error)
	// Snapshot reads a profile with its skills and evidence in one transaction
	Snapshot(ctx context.Context, profileID string) (Snapshot, error)
}

// AccessPort decides whether a viewer may read a profile
type AccessPort interface {
	CanView(ctx context.Context, viewerID, profileID string) (bool, error)
}
