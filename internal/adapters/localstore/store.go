// Package localstore keeps profile evidence snapshots in a local sqlite file
package localstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	glogger "gorm.io/gorm/logger"

	"skillproof/internal/core/evidence"
	perr "skillproof/internal/platform/errors"
	"skillproof/internal/platform/logger"
	"skillproof/internal/services/evidence/domain"
	evsvc "skillproof/internal/services/evidence/service"
)

// Store reads and writes evidence snapshots through gorm
type Store struct {
	db *gorm.DB
}

var (
	_ domain.ReaderPort = (*Store)(nil)
	_ domain.AccessPort = (*Store)(nil)
)

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
}

// Open opens or creates the sqlite file at path and migrates its tables
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, perr.InvalidArgf("sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "create %s", dir)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "open sqlite %s", path)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "sqlite handle")
	}
	// sqlite serialises writers anyway
	sqlDB.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			_ = sqlDB.Close()
			return nil, perr.Wrapf(err, perr.ErrorCodeDB, "%s", p)
		}
	}
	if err := db.AutoMigrate(&profileRow{}, &skillRow{}, &evidenceRow{}, &evidenceSkillRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "migrate sqlite")
	}

	logger.Named("localstore").Debug().Str("path", path).Msg("sqlite store ready")
	return &Store{db: db}, nil
}

// Close releases the underlying connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Import upserts a snapshot; evidence is linked to the skill it is filed under and to its skill refs
func (s *Store) Import(ctx context.Context, snap domain.Snapshot) error {
	if snap.Profile.ID == "" {
		return perr.WithField(perr.InvalidArgf("profile id is required"), "profile.id")
	}
	upsert := clause.OnConflict{UpdateAll: true}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p := profileRow{
			ID:        snap.Profile.ID,
			OwnerID:   snap.Profile.OwnerID,
			Handle:    snap.Profile.Handle,
			IsPublic:  snap.Profile.IsPublic,
			CreatedAt: snap.Profile.CreatedAt,
		}
		if err := tx.Clauses(upsert).Create(&p).Error; err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "upsert profile")
		}

		for _, se := range snap.Skills {
			if se.Skill.ID == "" {
				return perr.WithField(perr.InvalidArgf("skill id is required"), "skill.id")
			}
			sk := skillRow{ID: se.Skill.ID, ProfileID: p.ID, Name: se.Skill.Name, CreatedAt: se.Skill.CreatedAt}
			if err := tx.Clauses(upsert).Create(&sk).Error; err != nil {
				return perr.Wrapf(err, perr.ErrorCodeDB, "upsert skill %s", sk.ID)
			}

			for _, ev := range se.Evidence {
				if ev.ID == "" {
					return perr.WithField(perr.InvalidArgf("evidence id is required"), "evidence.id")
				}
				row := fromEvidence(p.ID, ev)
				if err := tx.Clauses(upsert).Create(&row).Error; err != nil {
					return perr.Wrapf(err, perr.ErrorCodeDB, "upsert evidence %s", ev.ID)
				}
				links := []evidenceSkillRow{{EvidenceID: ev.ID, SkillID: sk.ID}}
				for _, ref := range ev.SkillRefs {
					if ref != "" && ref != sk.ID {
						links = append(links, evidenceSkillRow{EvidenceID: ev.ID, SkillID: ref})
					}
				}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
					return perr.Wrapf(err, perr.ErrorCodeDB, "link evidence %s", ev.ID)
				}
			}
		}
		return nil
	})
}

// FetchEvidenceForSkill returns the evidence linked to skillID ordered by id
func (s *Store) FetchEvidenceForSkill(ctx context.Context, skillID string) ([]evidence.Evidence, error) {
	return evidenceForSkill(s.db.WithContext(ctx), skillID)
}

// FetchAllSkillsForProfile returns the skills of profileID ordered by creation
func (s *Store) FetchAllSkillsForProfile(ctx context.Context, profileID string) ([]domain.Skill, error) {
	return skillsFor(s.db.WithContext(ctx), profileID)
}

// Snapshot reads the profile, its skills and their evidence in one transaction
func (s *Store) Snapshot(ctx context.Context, profileID string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := profile(tx, profileID)
		if err != nil {
			return err
		}
		skills, err := skillsFor(tx, profileID)
		if err != nil {
			return err
		}

		var rows []evidenceRow
		if err := tx.Where("profile_id = ?", profileID).Order("id").Find(&rows).Error; err != nil {
			return perr.Wrap(err, perr.ErrorCodeDB, "list evidence")
		}
		items, err := withRefs(tx, rows)
		if err != nil {
			return err
		}
		snap = evsvc.Group(p, skills, items)
		return nil
	})
	return snap, err
}

// CanView allows public profiles and their owner
func (s *Store) CanView(ctx context.Context, viewerID, profileID string) (bool, error) {
	p, err := profile(s.db.WithContext(ctx), profileID)
	if err != nil {
		return false, err
	}
	return p.IsPublic || (viewerID != "" && p.OwnerID == viewerID), nil
}

func profile(db *gorm.DB, id string) (domain.Profile, error) {
	var row profileRow
	err := db.Where("id = ?", id).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.Profile{}, perr.NotFoundf("profile %s not found", id)
	case err != nil:
		return domain.Profile{}, perr.Wrap(err, perr.ErrorCodeDB, "load profile")
	}
	return row.domain(), nil
}

func skillsFor(db *gorm.DB, profileID string) ([]domain.Skill, error) {
	var rows []skillRow
	if err := db.Where("profile_id = ?", profileID).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "list skills")
	}
	out := make([]domain.Skill, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.domain())
	}
	return out, nil
}

func evidenceForSkill(db *gorm.DB, skillID string) ([]evidence.Evidence, error) {
	var rows []evidenceRow
	linked := db.Model(&evidenceSkillRow{}).Select("evidence_id").Where("skill_id = ?", skillID)
	if err := db.Where("id IN (?)", linked).Order("id").Find(&rows).Error; err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "list evidence")
	}
	return withRefs(db, rows)
}

// withRefs fills SkillRefs from the link table
func withRefs(db *gorm.DB, rows []evidenceRow) ([]evidence.Evidence, error) {
	out := make([]evidence.Evidence, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}

	var links []evidenceSkillRow
	if err := db.Where("evidence_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "list evidence links")
	}
	refs := make(map[string][]string, len(rows))
	for _, l := range links {
		refs[l.EvidenceID] = append(refs[l.EvidenceID], l.SkillID)
	}

	for _, r := range rows {
		rs := refs[r.ID]
		sort.Strings(rs)
		out = append(out, r.domain(rs))
	}
	return out, nil
}
