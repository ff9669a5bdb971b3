package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"slices"

	"skillproof/internal/adapters/localstore"
	"skillproof/internal/core/evidence"
	perr "skillproof/internal/platform/errors"
	evdom "skillproof/internal/services/evidence/domain"
)

// source selects where evidence is read from
type source struct {
	file    string
	db      string
	profile string
	skill   string
	name    string
}

// open returns a reader, the profile id to read and a close func
func (s source) open(ctx context.Context) (evdom.ReaderPort, string, func(), error) {
	switch {
	case s.file != "" && s.db != "":
		return nil, "", nil, perr.InvalidArgf("use either --file or --db, not both")
	case s.file != "":
		snap, err := readFile(s.file, s.skill, s.name)
		if err != nil {
			return nil, "", nil, err
		}
		if s.profile != "" && s.profile != snap.Profile.ID {
			return nil, "", nil, perr.NotFoundf("profile %s not in %s", s.profile, s.file)
		}
		return memory{snap}, snap.Profile.ID, func() {}, nil
	case s.db != "":
		if s.profile == "" {
			return nil, "", nil, perr.WithField(perr.InvalidArgf("--profile is required with --db"), "profile")
		}
		st, err := localstore.Open(s.db)
		if err != nil {
			return nil, "", nil, err
		}
		return st, s.profile, func() { _ = st.Close() }, nil
	}
	return nil, "", nil, perr.InvalidArgf("one of --file or --db is required")
}

// readFile accepts a profile snapshot object or a bare evidence array for one skill.
// Evidence filed under a skill always references it; name renames skillID
func readFile(path, skillID, name string) (evdom.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return evdom.Snapshot{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "read %s", path)
	}

	var snap evdom.Snapshot
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		var items []evidence.Evidence
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return evdom.Snapshot{}, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s", path)
		}
		if skillID == "" {
			skillID = "skill"
		}
		snap = evdom.Snapshot{
			Profile: evdom.Profile{ID: "local"},
			Skills:  []evdom.SkillEvidence{{Skill: evdom.Skill{ID: skillID, ProfileID: "local", Name: name}, Evidence: items}},
		}
	} else if err := json.Unmarshal(raw, &snap); err != nil {
		return evdom.Snapshot{}, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s", path)
	}

	for i := range snap.Skills {
		se := &snap.Skills[i]
		if name != "" && se.Skill.ID == skillID {
			se.Skill.Name = name
		}
		for j := range se.Evidence {
			if !slices.Contains(se.Evidence[j].SkillRefs, se.Skill.ID) {
				se.Evidence[j].SkillRefs = append(se.Evidence[j].SkillRefs, se.Skill.ID)
			}
		}
	}
	return snap, nil
}

// memory serves one decoded snapshot
type memory struct{ snap evdom.Snapshot }

func (m memory) FetchEvidenceForSkill(_ context.Context, skillID string) ([]evidence.Evidence, error) {
	se, ok := m.snap.Find(skillID)
	if !ok {
		return []evidence.Evidence{}, nil
	}
	return se.Evidence, nil
}

func (m memory) FetchAllSkillsForProfile(_ context.Context, profileID string) ([]evdom.Skill, error) {
	if profileID != m.snap.Profile.ID {
		return []evdom.Skill{}, nil
	}
	out := make([]evdom.Skill, 0, len(m.snap.Skills))
	for _, se := range m.snap.Skills {
		out = append(out, se.Skill)
	}
	return out, nil
}

func (m memory) Snapshot(_ context.Context, profileID string) (evdom.Snapshot, error) {
	if profileID != m.snap.Profile.ID {
		return evdom.Snapshot{}, perr.NotFoundf("profile %s not found", profileID)
	}
	return m.snap, nil
}

// operator reads local data, so every profile is visible
type operator struct{}

func (operator) CanView(context.Context, string, string) (bool, error) { return true, nil }
