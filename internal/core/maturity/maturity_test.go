package maturity

import (
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
	"time"

	"skillproof/internal/core/evidence"
	"skillproof/internal/core/tier"
	perr "skillproof/internal/platform/errors"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

func engine() *Engine { return New(Options{Now: fixedClock}) }

func daysAgo(d int) time.Time { return now.Add(-time.Duration(d) * 24 * time.Hour) }

func rustPackages() []evidence.Evidence {
	latest := daysAgo(10)
	out := make([]evidence.Evidence, 0, 5)
	for i := 0; i < 5; i++ {
		out = append(out, evidence.Evidence{
			ID:         fmt.Sprintf("rs-%d", i),
			Kind:       evidence.KindPackage,
			ProofRef:   fmt.Sprintf("https://crates.io/crates/widget-rs/0.%d.0", i),
			SkillRefs:  []string{"rust"},
			OccurredAt: latest.Add(-time.Duration(730-i*182) * 24 * time.Hour),
		})
	}
	out[4].OccurredAt = latest
	return out
}

func TestCompute_Empty(t *testing.T) {
	t.Parallel()
	r := engine().Compute("go", nil)
	if r.Score != 0 || r.Tier != tier.Unverified {
		t.Fatalf("empty: %+v", r)
	}
	if r.Err() != nil {
		t.Fatalf("empty should not violate: %v", r.Err())
	}
}

func TestCompute_SingleOldCommit(t *testing.T) {
	t.Parallel()
	items := []evidence.Evidence{{
		ID:         "e1",
		Kind:       evidence.KindCommit,
		ProofRef:   "https://github.com/acme/widget/commit/abc1234",
		SkillRefs:  []string{"go"},
		OccurredAt: daysAgo(400),
	}}
	r := engine().Compute("go", items)
	if r.Tier.AtLeast(tier.Proven) {
		t.Fatalf("single commit reached %s (%d)", r.Tier, r.Score)
	}
	if r.Score != 36 {
		t.Fatalf("score=%d want 36 (factors %+v)", r.Score, r.Factors)
	}
	if r.Factors.Time != 0 || r.Factors.Quality != 1 {
		t.Fatalf("factors=%+v", r.Factors)
	}
}

func TestCompute_RustPackagesExpert(t *testing.T) {
	t.Parallel()
	r := engine().Compute("rust", rustPackages())
	if r.Tier != tier.Expert {
		t.Fatalf("tier=%s score=%d factors=%+v", r.Tier, r.Score, r.Factors)
	}
	if r.Score != 89 {
		t.Fatalf("score=%d want 89", r.Score)
	}
	if r.DistinctCount != 5 || r.SingleSourceCapped {
		t.Fatalf("distinct=%d capped=%v", r.DistinctCount, r.SingleSourceCapped)
	}
	if r.LastOccurred == nil || !r.LastOccurred.Equal(daysAgo(10)) {
		t.Fatalf("last occurred = %v", r.LastOccurred)
	}
}

func TestCompute_SingleSourceCap(t *testing.T) {
	t.Parallel()
	ref := "https://github.com/acme/widget/commit/abc1234"
	var items []evidence.Evidence
	for i, d := range []int{1100, 600, 5} {
		items = append(items, evidence.Evidence{
			ID: fmt.Sprintf("dup-%d", i), Kind: evidence.KindCommit, ProofRef: ref, OccurredAt: daysAgo(d),
		})
	}
	r := engine().Compute("go", items)
	if r.DistinctCount != 1 {
		t.Fatalf("resubmissions must collapse, distinct=%d", r.DistinctCount)
	}
	if !r.SingleSourceCapped || r.Score != SingleSourceCeiling || r.Tier != tier.Emerging {
		t.Fatalf("cap not applied: %+v", r)
	}
	if r.Factors.Time == 0 {
		t.Fatalf("time should use every submission")
	}
}

func TestCompute_DuplicatesCountOnce(t *testing.T) {
	t.Parallel()
	a := evidence.Evidence{ID: "a", Kind: evidence.KindPackage, ProofRef: "https://www.npmjs.com/package/left-pad/v/1.3.0", OccurredAt: daysAgo(3)}
	b := a
	b.ID = "b"
	b.ProofRef = "pkg:npm/left-pad@1.3.0"
	r := engine().Compute("js", []evidence.Evidence{a, b})
	if r.DistinctCount != 1 || r.EvidenceCount != 2 {
		t.Fatalf("distinct=%d count=%d", r.DistinctCount, r.EvidenceCount)
	}
}

func TestCompute_DuplicateKeepsBestWeight(t *testing.T) {
	t.Parallel()
	ref := "https://github.com/acme/widget/commit/abc1234"
	refuted := evidence.Evidence{ID: "a", Kind: evidence.KindCommit, ProofRef: ref, Verification: evidence.VerificationRefuted}
	clean := evidence.Evidence{ID: "b", Kind: evidence.KindCommit, ProofRef: ref}
	r := engine().Compute("go", []evidence.Evidence{refuted, clean})
	if r.Factors.Quality != 1 {
		t.Fatalf("quality=%v want 1", r.Factors.Quality)
	}
}

func TestCompute_UndatedItems(t *testing.T) {
	t.Parallel()
	items := []evidence.Evidence{
		{ID: "a", Kind: evidence.KindCommit, ProofRef: "https://github.com/acme/a/commit/abc1234"},
		{ID: "b", Kind: evidence.KindCommit, ProofRef: "https://github.com/acme/b/commit/abc1234"},
	}
	r := engine().Compute("go", items)
	if r.Factors.Time != 0 || r.Factors.Recency != 0 {
		t.Fatalf("undated items must not drive time/recency: %+v", r.Factors)
	}
	if r.Factors.Volume == 0 || r.Factors.Quality == 0 {
		t.Fatalf("undated items still count toward volume/quality: %+v", r.Factors)
	}
	if r.FirstOccurred != nil || r.LastOccurred != nil {
		t.Fatalf("no timestamps expected")
	}
}

func TestCompute_CreatedAtFallback(t *testing.T) {
	t.Parallel()
	items := []evidence.Evidence{{ID: "a", Kind: evidence.KindLink, ProofRef: "https://example.com/post", CreatedAt: daysAgo(2)}}
	r := engine().Compute("go", items)
	if r.Factors.Recency != 1 {
		t.Fatalf("recency=%v want 1 from createdAt", r.Factors.Recency)
	}
}

func TestCompute_RecencyWindow(t *testing.T) {
	t.Parallel()
	e := engine()
	at := func(d int) float64 {
		return e.Compute("go", []evidence.Evidence{{ID: "x", Kind: evidence.KindCommit, OccurredAt: daysAgo(d)}}).Factors.Recency
	}
	if got := at(30); got != 1 {
		t.Fatalf("day 30 recency=%v want 1", got)
	}
	if got, want := at(31), math.Exp(-1.0/180); math.Abs(got-want) > 1e-12 {
		t.Fatalf("day 31 recency=%v want %v", got, want)
	}
	if got := at(-10); got != 1 {
		t.Fatalf("future dated recency=%v want 1", got)
	}
}

func TestCompute_ContractViolation(t *testing.T) {
	t.Parallel()
	items := []evidence.Evidence{
		{ID: "ok", Kind: evidence.KindCommit, ProofRef: "https://github.com/acme/widget/commit/abc1234", SkillRefs: []string{"go"}},
		{ID: "loose", Kind: evidence.KindLink, ProofRef: "https://example.com"},
		{ID: "wrong", Kind: evidence.KindCommit, ProofRef: "https://github.com/acme/other", SkillRefs: []string{"rust"}},
	}
	r := engine().Compute("go", items)
	if r.EvidenceCount != 2 {
		t.Fatalf("evidence count=%d want 2", r.EvidenceCount)
	}
	if len(r.Rejected) != 1 || r.Rejected[0].EvidenceID != "wrong" {
		t.Fatalf("rejected=%+v", r.Rejected)
	}
	err := r.Err()
	if !perr.IsCode(err, perr.ErrorCodeContractViolation) {
		t.Fatalf("err=%v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "skill_refs" {
		t.Fatalf("field not set: %v", err)
	}
}

func TestCompute_DeterministicAndOrderIndependent(t *testing.T) {
	t.Parallel()
	items := append(rustPackages(),
		evidence.Evidence{ID: "d1", Kind: evidence.KindDocument, ProofRef: "https://example.com/rust-notes", OccurredAt: daysAgo(90)},
		evidence.Evidence{ID: "d2", Kind: evidence.KindManualClaim, ProofRef: "trust me"},
		evidence.Evidence{ID: "d3", Kind: evidence.KindDeployment, ProofRef: "https://rusty-7f3a9c2.vercel.app", CreatedAt: daysAgo(45)},
	)
	e := engine()
	want := e.Compute("rust", items)
	if again := e.Compute("rust", items); !reflect.DeepEqual(want, again) {
		t.Fatalf("not deterministic:\n%+v\n%+v", want, again)
	}

	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 50; i++ {
		shuffled := append([]evidence.Evidence(nil), items...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := e.Compute("rust", shuffled); !reflect.DeepEqual(want, got) {
			t.Fatalf("order changed result:\n%+v\n%+v", want, got)
		}
	}
}

func randomEvidence(rng *rand.Rand, i int) evidence.Evidence {
	refs := []string{
		"https://github.com/acme/widget",
		"https://example.com/blog/%d",
		"https://www.npmjs.com/package/pkg-%d",
		"not a url %d",
		"https://app-%d.netlify.app",
		"",
	}
	ref := refs[rng.IntN(len(refs))]
	if strings.Contains(ref, "%d") {
		ref = fmt.Sprintf(ref, rng.IntN(5))
	}
	ev := evidence.Evidence{
		ID:       fmt.Sprintf("r-%d", i),
		Kind:     evidence.Kinds[rng.IntN(len(evidence.Kinds))],
		ProofRef: ref,
	}
	if rng.IntN(4) != 0 {
		ev.OccurredAt = daysAgo(rng.IntN(2000) - 20)
	}
	if rng.IntN(5) == 0 {
		ev.Verification = evidence.VerificationRefuted
	}
	return ev
}

func TestCompute_MonotonicUnderHighConfidenceCommit(t *testing.T) {
	t.Parallel()
	e := engine()
	rng := rand.New(rand.NewPCG(42, 1))
	for trial := 0; trial < 300; trial++ {
		n := rng.IntN(8)
		items := make([]evidence.Evidence, 0, n+1)
		for i := 0; i < n; i++ {
			items = append(items, randomEvidence(rng, i))
		}
		before := e.Compute("go", items)

		commit := evidence.Evidence{
			ID:       fmt.Sprintf("c-%d", trial),
			Kind:     evidence.KindCommit,
			ProofRef: fmt.Sprintf("https://github.com/acme/widget/commit/%07x", trial+0x100000),
		}
		if rng.IntN(3) != 0 {
			commit.OccurredAt = daysAgo(rng.IntN(1500))
		}
		after := e.Compute("go", append(items, commit))
		if after.Score < before.Score {
			t.Fatalf("trial %d: score dropped %d -> %d\nbefore=%+v\nafter=%+v", trial, before.Score, after.Score, before, after)
		}
	}
}

func TestCompute_FactorsInRange(t *testing.T) {
	t.Parallel()
	e := engine()
	rng := rand.New(rand.NewPCG(3, 3))
	for trial := 0; trial < 100; trial++ {
		n := rng.IntN(10)
		items := make([]evidence.Evidence, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, randomEvidence(rng, i))
		}
		r := e.Compute("go", items)
		for name, v := range map[string]float64{"time": r.Factors.Time, "volume": r.Factors.Volume, "quality": r.Factors.Quality, "recency": r.Factors.Recency} {
			if v < 0 || v > 1 {
				t.Fatalf("%s=%v out of range", name, v)
			}
		}
		if r.Score < 0 || r.Score > 100 || r.Tier != tier.FromScore(r.Score) {
			t.Fatalf("score/tier mismatch: %+v", r)
		}
	}
}

func TestNew_FillsDefaults(t *testing.T) {
	t.Parallel()
	o := New(Options{VolumeScale: 5}).Options()
	if o.TimeScaleDays != 365 || o.VolumeScale != 5 || o.FreshDays != 30 || o.RecencyScaleDays != 180 {
		t.Fatalf("options=%+v", o)
	}
	if o.Now == nil || o.Detector == nil {
		t.Fatalf("clock and detector must default")
	}
}

func TestCurves(t *testing.T) {
	t.Parallel()
	if saturate(0, 3) != 0 || saturate(-1, 3) != 0 {
		t.Fatalf("saturate at zero")
	}
	if got := saturate(3, 3); math.Abs(got-(1-math.Exp(-1))) > 1e-12 {
		t.Fatalf("saturate(3,3)=%v", got)
	}
	if decay(0, 10) != 1 || decay(5, 0) != 0 {
		t.Fatalf("decay edges")
	}
	if wholeDays(47*time.Hour) != 1 || wholeDays(-time.Hour) != 0 {
		t.Fatalf("wholeDays")
	}
}
