package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Profile(ctx context.Context, viewerID, profileID string) (ProfileCredibility, error)
	Skill(ctx context.Context, viewerID, profileID, skillID string) (SkillCredibility, error)
	Timeline(ctx context.Context, viewerID, profileID, skillID, project string) (SkillTimeline, error)
}

// SnapshotSink stores computed scores for trend analytics; never read back into scoring
type SnapshotSink interface {
	Record(ctx context.Context, rows []ScoreSnapshot) error
}
