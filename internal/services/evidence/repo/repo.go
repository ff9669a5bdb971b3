// Package repo provides postgres access for profiles, skills and evidence
package repo

import (
	"context"
	"time"

	"skillproof/internal/core/evidence"
	"skillproof/internal/modkit/repokit"
	"skillproof/internal/platform/store"
	ptime "skillproof/internal/platform/time"
	"skillproof/internal/services/evidence/domain"
)

// Repo is the read surface scoring needs
type Repo interface {
	Profile(ctx context.Context, profileID string) (domain.Profile, error)
	Skills(ctx context.Context, profileID string) ([]domain.Skill, error)
	EvidenceForSkill(ctx context.Context, skillID string) ([]evidence.Evidence, error)
	EvidenceForProfile(ctx context.Context, profileID string) ([]evidence.Evidence, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Profile(ctx context.Context, profileID string) (domain.Profile, error) {
	const sql = `
select id::text, owner_id, handle, is_public, created_at
from profiles
where id = $1::uuid
`
	return store.One(ctx, r.q, scanProfile, sql, profileID)
}

func (r *queries) Skills(ctx context.Context, profileID string) ([]domain.Skill, error) {
	const sql = `
select id::text, profile_id::text, name, created_at
from skills
where profile_id = $1::uuid
order by created_at asc, id asc
`
	return store.Many(ctx, r.q, scanSkill, sql, profileID)
}

// evidence rows carry every skill they are attached to so callers can check the contract
const evidenceCols = `
select e.id::text, e.kind, e.proof_ref, e.occurred_at, e.created_at, e.verification, coalesce(e.project, ''),
       array(select x.skill_id::text from evidence_skills x where x.evidence_id = e.id order by 1) as skill_refs
from evidence e
`

func (r *queries) EvidenceForSkill(ctx context.Context, skillID string) ([]evidence.Evidence, error) {
	const sql = evidenceCols + `
join evidence_skills es on es.evidence_id = e.id
where es.skill_id = $1::uuid
order by e.id asc
`
	return store.Many(ctx, r.q, scanEvidence, sql, skillID)
}

func (r *queries) EvidenceForProfile(ctx context.Context, profileID string) ([]evidence.Evidence, error) {
	const sql = evidenceCols + `
where e.profile_id = $1::uuid
order by e.id asc
`
	return store.Many(ctx, r.q, scanEvidence, sql, profileID)
}

func scanProfile(row store.Row) (domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.OwnerID, &p.Handle, &p.IsPublic, &p.CreatedAt)
	return p, err
}

func scanSkill(row store.Row) (domain.Skill, error) {
	var s domain.Skill
	err := row.Scan(&s.ID, &s.ProfileID, &s.Name, &s.CreatedAt)
	return s, err
}

func scanEvidence(row store.Row) (evidence.Evidence, error) {
	var (
		ev           evidence.Evidence
		kind, verify string
		occurred     *time.Time
	)
	if err := row.Scan(&ev.ID, &kind, &ev.ProofRef, &occurred, &ev.CreatedAt, &verify, &ev.Project, &ev.SkillRefs); err != nil {
		return evidence.Evidence{}, err
	}
	ev.Kind = evidence.ParseKind(kind)
	ev.Verification = evidence.ParseVerification(verify)
	ev.OccurredAt = ptime.Value(occurred)
	return ev, nil
}
