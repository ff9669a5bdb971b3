// Package service reads profile evidence snapshots from postgres
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"skillproof/internal/core/evidence"
	"skillproof/internal/modkit/repokit"
	perr "skillproof/internal/platform/errors"
	"skillproof/internal/services/evidence/domain"
	"skillproof/internal/services/evidence/repo"
)

// Config for the evidence service
type Config struct {
	// StatementTimeout bounds each read statement, zero disables it
	StatementTimeout time.Duration
}

// Svc implements domain.ReaderPort and domain.AccessPort
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

var (
	_ domain.ReaderPort = (*Svc)(nil)
	_ domain.AccessPort = (*Svc)(nil)
)

// New constructs an evidence service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config) *Svc {
	if db == nil {
		panic("evidence.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("evidence.Service requires a non nil Repo binder")
	}
	if cfg.StatementTimeout > 0 {
		db = repokit.WithBeginHooks(db, repokit.StatementTimeout(cfg.StatementTimeout))
	}
	return &Svc{binder: binder, db: db}
}

// FetchEvidenceForSkill returns every evidence item attached to skillID
func (s *Svc) FetchEvidenceForSkill(ctx context.Context, skillID string) ([]evidence.Evidence, error) {
	if err := checkID("skill_id", skillID); err != nil {
		return nil, err
	}
	var out []evidence.Evidence
	err := repokit.WithSnapshot(ctx, s.db, func(q repokit.Queryer) error {
		var err error
		out, err = s.binder.Bind(q).EvidenceForSkill(ctx, skillID)
		return err
	})
	return out, perr.FromPostgres(err, "read evidence")
}

// FetchAllSkillsForProfile returns the skills declared on profileID
func (s *Svc) FetchAllSkillsForProfile(ctx context.Context, profileID string) ([]domain.Skill, error) {
	if err := checkID("profile_id", profileID); err != nil {
		return nil, err
	}
	var out []domain.Skill
	err := repokit.WithSnapshot(ctx, s.db, func(q repokit.Queryer) error {
		var err error
		out, err = s.binder.Bind(q).Skills(ctx, profileID)
		return err
	})
	return out, perr.FromPostgres(err, "read skills")
}

// Snapshot reads the profile, its skills and their evidence from one consistent view
func (s *Svc) Snapshot(ctx context.Context, profileID string) (domain.Snapshot, error) {
	if err := checkID("profile_id", profileID); err != nil {
		return domain.Snapshot{}, err
	}
	var snap domain.Snapshot
	err := repokit.WithSnapshot(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		p, err := r.Profile(ctx, profileID)
		if err != nil {
			return notFound(err, "profile %s not found", profileID)
		}
		skills, err := r.Skills(ctx, profileID)
		if err != nil {
			return err
		}
		items, err := r.EvidenceForProfile(ctx, profileID)
		if err != nil {
			return err
		}
		snap = Group(p, skills, items)
		return nil
	})
	return snap, perr.FromPostgres(err, "read snapshot")
}

// CanView reports whether viewerID owns profileID or the profile is public
func (s *Svc) CanView(ctx context.Context, viewerID, profileID string) (bool, error) {
	if err := checkID("profile_id", profileID); err != nil {
		return false, err
	}
	var p domain.Profile
	err := repokit.WithSnapshot(ctx, s.db, func(q repokit.Queryer) error {
		var err error
		p, err = s.binder.Bind(q).Profile(ctx, profileID)
		return err
	})
	if err != nil {
		return false, perr.FromPostgres(notFound(err, "profile %s not found", profileID), "read profile")
	}
	return p.IsPublic || (viewerID != "" && p.OwnerID == viewerID), nil
}

// Group files items under every skill they reference, keeping skill order.
// Items that reference no skill of the profile are dropped
func Group(p domain.Profile, skills []domain.Skill, items []evidence.Evidence) domain.Snapshot {
	snap := domain.Snapshot{Profile: p, Skills: make([]domain.SkillEvidence, len(skills))}
	idx := make(map[string]int, len(skills))
	for i, sk := range skills {
		snap.Skills[i] = domain.SkillEvidence{Skill: sk, Evidence: []evidence.Evidence{}}
		idx[sk.ID] = i
	}
	for _, ev := range items {
		for _, ref := range ev.SkillRefs {
			if i, ok := idx[ref]; ok {
				snap.Skills[i].Evidence = append(snap.Skills[i].Evidence, ev)
			}
		}
	}
	return snap
}

func checkID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return perr.WithField(perr.InvalidArgf("%s must be a uuid", field), field)
	}
	return nil
}

func notFound(err error, format string, a ...any) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf(format, a...)
	}
	return err
}
