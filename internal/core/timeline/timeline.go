// Package timeline turns evidence into a chronological narrative, one sentence per item
package timeline

import (
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"skillproof/internal/core/evidence"
	"skillproof/internal/core/provenance"
)

// Entry is one narrated evidence item
type Entry struct {
	EvidenceID string              `json:"evidence_id"`
	Kind       evidence.Kind       `json:"kind"`
	OccurredAt *time.Time          `json:"occurred_at,omitempty"`
	Detected   provenance.Detected `json:"detected"`
	Sentence   string              `json:"sentence"`
}

// Narrator renders evidence sentences against a clock
type Narrator struct {
	detector evidence.Detector
	now      func() time.Time
}

// Option configures a Narrator
type Option func(*Narrator)

// WithClock sets the reference time relative phrases are measured against
func WithClock(now func() time.Time) Option {
	return func(n *Narrator) {
		if now != nil {
			n.now = now
		}
	}
}

// WithDetector replaces the provenance detector
func WithDetector(d evidence.Detector) Option {
	return func(n *Narrator) {
		if d != nil {
			n.detector = d
		}
	}
}

// New builds a Narrator
func New(opts ...Option) *Narrator {
	n := &Narrator{detector: evidence.DefaultDetector{}, now: time.Now}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Narrate renders one sentence for ev. projectContext overrides ev.Project when set
func (n *Narrator) Narrate(ev evidence.Evidence, skillName, projectContext string) string {
	return n.sentence(ev, n.detector.Detect(ev.ProofRef), skillName, projectContext)
}

// Timeline narrates items in ascending effective time; ties break on id and undated items go last
func (n *Narrator) Timeline(items []evidence.Evidence, skillName, projectContext string) []Entry {
	sorted := append([]evidence.Evidence(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, oki := sorted[i].When()
		tj, okj := sorted[j].When()
		switch {
		case oki != okj:
			return oki
		case oki && !ti.Equal(tj):
			return ti.Before(tj)
		}
		return sorted[i].ID < sorted[j].ID
	})

	out := make([]Entry, 0, len(sorted))
	for _, ev := range sorted {
		det := n.detector.Detect(ev.ProofRef)
		e := Entry{
			EvidenceID: ev.ID,
			Kind:       evidence.ParseKind(string(ev.Kind)),
			Detected:   det,
			Sentence:   n.sentence(ev, det, skillName, projectContext),
		}
		if t, ok := ev.When(); ok {
			t = t.UTC()
			e.OccurredAt = &t
		}
		out = append(out, e)
	}
	return out
}

func (n *Narrator) sentence(ev evidence.Evidence, det provenance.Detected, skillName, projectContext string) string {
	skill := strings.TrimSpace(skillName)
	if skill == "" {
		skill = "this skill"
	}
	p := partsOf(det)
	kind := evidence.ParseKind(string(ev.Kind))

	var b strings.Builder
	if det.Confidence == provenance.ConfidenceHigh && det.Platform != provenance.PlatformNone {
		b.WriteString(confident(kind, p, skill))
	} else {
		b.WriteString(hedged(kind, p, skill))
	}

	project := strings.TrimSpace(projectContext)
	if project == "" {
		project = strings.TrimSpace(ev.Project)
	}
	if project != "" {
		b.WriteString(" on ")
		b.WriteString(project)
	}
	b.WriteByte(' ')
	b.WriteString(n.when(ev))
	b.WriteByte('.')
	return b.String()
}

func (n *Narrator) when(ev evidence.Evidence) string {
	t, ok := ev.When()
	if !ok {
		return "at an unknown time"
	}
	s := humanize.RelTime(t, n.now(), "ago", "from now")
	if s == "now" {
		return "just now"
	}
	return s
}
