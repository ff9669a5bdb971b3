// Package service contains credibility scoring workflows
package service

import (
	"context"
	"time"

	"skillproof/internal/core/credibility"
	"skillproof/internal/core/maturity"
	"skillproof/internal/core/timeline"
	perr "skillproof/internal/platform/errors"
	"skillproof/internal/platform/logger"
	"skillproof/internal/services/api/credibility/domain"
	evdom "skillproof/internal/services/evidence/domain"
)

// Service defines the credibility service contract
type Service interface {
	domain.ServicePort
}

// Config for the credibility service
type Config struct {
	// Scoring tunes the maturity curves; its clock also drives the narrator
	Scoring maturity.Options
}

// Svc implements the credibility service
type Svc struct {
	reader evdom.ReaderPort
	access evdom.AccessPort
	sink   domain.SnapshotSink

	engine   *maturity.Engine
	narrator *timeline.Narrator
	now      func() time.Time
}

// New constructs a credibility service. sink may be nil
func New(reader evdom.ReaderPort, access evdom.AccessPort, sink domain.SnapshotSink, cfg Config) *Svc {
	if reader == nil {
		panic("credibility.Service requires a non nil ReaderPort")
	}
	if access == nil {
		panic("credibility.Service requires a non nil AccessPort")
	}
	engine := maturity.New(cfg.Scoring)
	opts := engine.Options()
	return &Svc{
		reader:   reader,
		access:   access,
		sink:     sink,
		engine:   engine,
		narrator: timeline.New(timeline.WithClock(opts.Now), timeline.WithDetector(opts.Detector)),
		now:      opts.Now,
	}
}

// Profile scores every skill on the profile from one snapshot and aggregates them
func (s *Svc) Profile(ctx context.Context, viewerID, profileID string) (domain.ProfileCredibility, error) {
	snap, err := s.load(ctx, viewerID, profileID)
	if err != nil {
		return domain.ProfileCredibility{}, err
	}

	out := domain.ProfileCredibility{
		ProfileID:  snap.Profile.ID,
		Handle:     snap.Profile.Handle,
		Skills:     make([]domain.SkillCredibility, 0, len(snap.Skills)),
		ComputedAt: s.now().UTC(),
	}
	results := make([]maturity.Result, 0, len(snap.Skills))
	for _, se := range snap.Skills {
		res := s.compute(ctx, se)
		results = append(results, res)
		out.Skills = append(out.Skills, domain.SkillCredibility{Name: se.Skill.Name, Result: res})
	}
	out.Summary = credibility.Aggregate(results)

	s.record(ctx, snap.Profile.ID, results, out.ComputedAt)
	return out, nil
}

// Skill scores one skill of the profile
func (s *Svc) Skill(ctx context.Context, viewerID, profileID, skillID string) (domain.SkillCredibility, error) {
	se, err := s.skill(ctx, viewerID, profileID, skillID)
	if err != nil {
		return domain.SkillCredibility{}, err
	}
	return domain.SkillCredibility{Name: se.Skill.Name, Result: s.compute(ctx, se)}, nil
}

// Timeline narrates the evidence of one skill in chronological order
func (s *Svc) Timeline(ctx context.Context, viewerID, profileID, skillID, project string) (domain.SkillTimeline, error) {
	se, err := s.skill(ctx, viewerID, profileID, skillID)
	if err != nil {
		return domain.SkillTimeline{}, err
	}
	return domain.SkillTimeline{
		SkillID:   se.Skill.ID,
		SkillName: se.Skill.Name,
		Entries:   s.narrator.Timeline(se.Evidence, se.Skill.Name, project),
	}, nil
}

func (s *Svc) load(ctx context.Context, viewerID, profileID string) (evdom.Snapshot, error) {
	ok, err := s.access.CanView(ctx, viewerID, profileID)
	if err != nil {
		return evdom.Snapshot{}, err
	}
	if !ok {
		return evdom.Snapshot{}, perr.Forbiddenf("profile %s is not visible to this viewer", profileID)
	}
	return s.reader.Snapshot(ctx, profileID)
}

func (s *Svc) skill(ctx context.Context, viewerID, profileID, skillID string) (evdom.SkillEvidence, error) {
	snap, err := s.load(ctx, viewerID, profileID)
	if err != nil {
		return evdom.SkillEvidence{}, err
	}
	se, ok := snap.Find(skillID)
	if !ok {
		return evdom.SkillEvidence{}, perr.NotFoundf("skill %s not found on profile %s", skillID, profileID)
	}
	return se, nil
}

// compute scores se and logs evidence the engine refused
func (s *Svc) compute(ctx context.Context, se evdom.SkillEvidence) maturity.Result {
	res := s.engine.Compute(se.Skill.ID, se.Evidence)
	if err := res.Err(); err != nil {
		logger.C(ctx).Warn().
			Err(err).
			Str("skill_id", se.Skill.ID).
			Int("rejected", len(res.Rejected)).
			Msg("evidence excluded from skill score")
	}
	return res
}

// record writes analytics snapshots; failures never fail the read
func (s *Svc) record(ctx context.Context, profileID string, results []maturity.Result, at time.Time) {
	if s.sink == nil || len(results) == 0 {
		return
	}
	rows := make([]domain.ScoreSnapshot, 0, len(results))
	for _, r := range results {
		rows = append(rows, domain.ScoreSnapshot{ProfileID: profileID, Result: r, ComputedAt: at})
	}
	if err := s.sink.Record(ctx, rows); err != nil {
		logger.C(ctx).Warn().Err(err).Str("profile_id", profileID).Msg("score snapshot write failed")
	}
}
