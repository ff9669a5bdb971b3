// Package repo provides the clickhouse sink for score snapshots
package repo

import (
	"context"
	"sync"

	"skillproof/internal/platform/store"
	"skillproof/internal/services/api/credibility/domain"
)

// SnapshotsTable receives one row per computed skill score
const SnapshotsTable = "skill_score_snapshots"

const snapshotsDDL = `
CREATE TABLE IF NOT EXISTS skill_score_snapshots (
  skill_id    String,
  profile_id  String,
  score       UInt8,
  tier        LowCardinality(String),
  time        Float64,
  volume      Float64,
  quality     Float64,
  recency     Float64,
  computed_at DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (profile_id, skill_id, computed_at)
`

// CH writes score snapshots to clickhouse
type CH struct {
	ch store.Clickhouse

	mu    sync.Mutex
	ready bool
}

var _ domain.SnapshotSink = (*CH)(nil)

// NewCH returns a sink over ch
func NewCH(ch store.Clickhouse) *CH {
	if ch == nil {
		panic("credibility.CH requires a non nil Clickhouse")
	}
	return &CH{ch: ch}
}

// Record appends rows, creating the table on first use
func (s *CH) Record(ctx context.Context, rows []domain.ScoreSnapshot) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.ensure(ctx); err != nil {
		return err
	}
	batch := make([][]any, 0, len(rows))
	for _, r := range rows {
		f := r.Result.Factors
		batch = append(batch, []any{
			r.Result.SkillID,
			r.ProfileID,
			uint8(r.Result.Score),
			r.Result.Tier.String(),
			f.Time, f.Volume, f.Quality, f.Recency,
			r.ComputedAt.UTC(),
		})
	}
	return s.ch.Insert(ctx, SnapshotsTable, batch)
}

func (s *CH) ensure(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := s.ch.Exec(ctx, snapshotsDDL); err != nil {
		return err
	}
	s.ready = true
	return nil
}
