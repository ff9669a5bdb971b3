package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"skillproof/internal/adapters/localstore"
	"skillproof/internal/core/evidence"
	"skillproof/internal/core/tier"
	perr "skillproof/internal/platform/errors"
	"skillproof/internal/platform/testkit"
	evdom "skillproof/internal/services/evidence/domain"
)

const now = "2026-06-01T12:00:00Z"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRoot()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

const commitArray = `[
  {"id":"e1","kind":"code_commit","proof_ref":"https://github.com/acme/widget/commit/abc1234def5678","occurred_at":"2026-05-18T12:00:00Z"}
]`

func TestDetect(t *testing.T) {
	out, err := run(t, "detect", "https://github.com/acme/widget/commit/abc1234def5678", "not a url")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	var lines []detectLine
	if err := json.Unmarshal([]byte(out), &lines); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines=%d", len(lines))
	}
	if lines[0].Platform != "source_control" || lines[0].Confidence != "high" || !lines[0].Checkable {
		t.Fatalf("commit=%+v", lines[0])
	}
	if lines[1].ProofRef != "not a url" || lines[1].Platform != "none" || lines[1].CanonicalID != nil {
		t.Fatalf("garbage=%+v", lines[1])
	}
}

func TestDetect_RequiresArgs(t *testing.T) {
	if _, err := run(t, "detect"); err == nil {
		t.Fatalf("expected an argument error")
	}
}

func TestScore_EvidenceArray(t *testing.T) {
	testkit.Serial(t)
	path := writeFile(t, "evidence.json", commitArray)
	out, err := run(t, "--now", now, "score", "--file", path, "--skill", "go", "--name", "Go")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var got struct {
		Name               string    `json:"name"`
		SkillID            string    `json:"skill_id"`
		Score              int       `json:"score"`
		Tier               tier.Tier `json:"tier"`
		SingleSourceCapped bool      `json:"single_source_capped"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Name != "Go" || got.Score <= 0 || got.Score > 54 {
		t.Fatalf("got %+v", got)
	}
	if got.Tier.AtLeast(tier.Proven) {
		t.Fatalf("one commit reached %v", got.Tier)
	}
}

func TestScore_ProfileFromDB(t *testing.T) {
	testkit.Serial(t)
	db := filepath.Join(t.TempDir(), "snap.db")
	st, err := localstore.Open(db)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	snap := evdom.Snapshot{
		Profile: evdom.Profile{ID: "p1", Handle: "ada"},
		Skills: []evdom.SkillEvidence{
			{Skill: evdom.Skill{ID: "s1", Name: "Go"}, Evidence: []evidence.Evidence{
				{ID: "e1", Kind: evidence.KindLink, ProofRef: "https://example.com/post", OccurredAt: at},
			}},
			{Skill: evdom.Skill{ID: "s2", Name: "Rust"}, Evidence: []evidence.Evidence{}},
		},
	}
	if err := st.Import(context.Background(), snap); err != nil {
		t.Fatalf("import: %v", err)
	}
	_ = st.Close()

	out, err := run(t, "--now", now, "score", "--db", db, "--profile", "p1")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var got struct {
		ProfileID string `json:"profile_id"`
		Handle    string `json:"handle"`
		Summary   struct {
			TotalSkillsCount int `json:"total_skills_count"`
		} `json:"summary"`
		Skills []struct {
			Name          string `json:"name"`
			EvidenceCount int    `json:"evidence_count"`
		} `json:"skills"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.ProfileID != "p1" || got.Handle != "ada" || got.Summary.TotalSkillsCount != 2 || len(got.Skills) != 2 {
		t.Fatalf("got %+v", got)
	}
	if got.Skills[0].Name != "Go" || got.Skills[0].EvidenceCount != 1 || got.Skills[1].EvidenceCount != 0 {
		t.Fatalf("skills=%+v", got.Skills)
	}
}

func TestTimeline_File(t *testing.T) {
	testkit.Serial(t)
	path := writeFile(t, "evidence.json", commitArray)
	out, err := run(t, "--now", now, "timeline", "--file", path, "--skill", "go", "--name", "Go", "--project", "Widget")
	if err != nil {
		t.Fatalf("timeline: %v", err)
	}
	testkit.MustContain(t, out, "Committed abc1234 to acme/widget for Go on Widget 2 weeks ago.")
	testkit.MustContain(t, out, `"skill_name":"Go"`)
}

func TestTimeline_RequiresSkill(t *testing.T) {
	path := writeFile(t, "evidence.json", commitArray)
	if _, err := run(t, "timeline", "--file", path); err == nil {
		t.Fatalf("expected missing --skill error")
	}
}

func TestSourceErrors(t *testing.T) {
	testkit.Serial(t)
	path := writeFile(t, "evidence.json", commitArray)
	bad := writeFile(t, "bad.json", "{nope")
	cases := []struct {
		name string
		args []string
		ok   bool
		code perr.ErrorCode
	}{
		{"no source", []string{"score"}, false, perr.ErrorCodeInvalidArgument},
		{"both sources", []string{"score", "--file", path, "--db", "x.db"}, false, perr.ErrorCodeInvalidArgument},
		{"db without profile", []string{"score", "--db", "x.db"}, false, perr.ErrorCodeInvalidArgument},
		{"bad json", []string{"score", "--file", bad}, false, perr.ErrorCodeJSON},
		{"wrong profile", []string{"score", "--file", path, "--profile", "p9"}, false, perr.ErrorCodeNotFound},
		{"skill of an evidence array", []string{"score", "--file", path, "--skill", "go", "--name", "Go", "--now", now}, true, 0},
		{"bad now", []string{"--now", "yesterday", "score", "--file", path}, false, perr.ErrorCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := run(t, tc.args...)
		if tc.ok {
			if err != nil {
				t.Fatalf("%s: unexpected %v", tc.name, err)
			}
			continue
		}
		if !perr.IsCode(err, tc.code) {
			t.Fatalf("%s: err=%v want %s", tc.name, err, tc.code)
		}
	}
}

func TestReadFile_SnapshotLinksSkills(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "profile.json", `{
	  "profile": {"id": "p1"},
	  "skills": [{"skill": {"id": "s1", "name": "Go"}, "evidence": [{"id": "e1", "kind": "link"}]}]
	}`)
	snap, err := readFile(path, "s1", "Golang")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	se := snap.Skills[0]
	if se.Skill.Name != "Golang" || !strings.Contains(strings.Join(se.Evidence[0].SkillRefs, ","), "s1") {
		t.Fatalf("se=%+v", se)
	}
}

func TestReadFile_LinksEachSkillOnce(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "linked.json", `{
	  "profile": {"id": "p1"},
	  "skills": [{"skill": {"id": "s1"}, "evidence": [
	    {"id": "e1", "kind": "link"},
	    {"id": "e2", "kind": "link", "skill_refs": ["s1"]},
	    {"id": "e3", "kind": "link", "skill_refs": ["s9"]}
	  ]}]
	}`)
	snap, err := readFile(path, "", "")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := map[string]string{"e1": "s1", "e2": "s1", "e3": "s9,s1"}
	for _, ev := range snap.Skills[0].Evidence {
		if got := strings.Join(ev.SkillRefs, ","); got != want[ev.ID] {
			t.Fatalf("%s refs=%q want %q", ev.ID, got, want[ev.ID])
		}
	}
}
