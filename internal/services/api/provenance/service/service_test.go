package service

import (
	"context"
	"errors"
	"testing"

	"skillproof/internal/core/evidence"
	"skillproof/internal/core/provenance"
	perr "skillproof/internal/platform/errors"
)

type fakeProbe struct {
	host  string
	found bool
	url   string
	err   error
	calls int
}

func (f *fakeProbe) Supports(d provenance.Detected) bool { return d.Host == f.host }

func (f *fakeProbe) Check(context.Context, provenance.Detected) (bool, string, error) {
	f.calls++
	return f.found, f.url, f.err
}

const commitRef = "https://github.com/acme/widget/commit/abc1234def5678"

func TestDetect(t *testing.T) {
	t.Parallel()
	c := New(nil).Detect(context.Background(), commitRef)
	if c.Platform != provenance.PlatformSourceControl || !c.Checkable {
		t.Fatalf("classification=%+v", c)
	}
}

func TestVerify_Outcomes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		probe  *fakeProbe
		ref    string
		status evidence.Verification
		url    string
		calls  int
	}{
		{"found", &fakeProbe{host: "github.com", found: true, url: "https://x"}, commitRef, evidence.VerificationVerified, "https://x", 1},
		{"missing", &fakeProbe{host: "github.com"}, commitRef, evidence.VerificationRefuted, "", 1},
		{"no probe for host", &fakeProbe{host: "gitlab.com"}, commitRef, evidence.VerificationUnchecked, "", 0},
		{"not checkable", &fakeProbe{host: "example.com", found: true}, "https://example.com/post", evidence.VerificationUnchecked, "", 0},
		{"empty", &fakeProbe{host: "", found: true}, "", evidence.VerificationUnchecked, "", 0},
	}
	for _, tc := range cases {
		s := New(nil, NamedProbe{Name: "fake", Probe: tc.probe})
		got, err := s.Verify(context.Background(), tc.ref)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got.Status != tc.status || got.URL != tc.url || tc.probe.calls != tc.calls {
			t.Fatalf("%s: outcome=%+v calls=%d", tc.name, got, tc.probe.calls)
		}
	}
}

func TestVerify_FirstSupportingProbeWins(t *testing.T) {
	t.Parallel()
	a := &fakeProbe{host: "github.com", found: true}
	b := &fakeProbe{host: "github.com"}
	got, err := New(nil, NamedProbe{"a", a}, NamedProbe{"b", b}).Verify(context.Background(), commitRef)
	if err != nil || got.Probe != "a" || a.calls != 1 || b.calls != 0 {
		t.Fatalf("outcome=%+v err=%v a=%d b=%d", got, err, a.calls, b.calls)
	}
}

func TestVerify_Errors(t *testing.T) {
	t.Parallel()
	plain := New(nil, NamedProbe{"gh", &fakeProbe{host: "github.com", err: errors.New("dial tcp: refused")}})
	if _, err := plain.Verify(context.Background(), commitRef); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}

	limited := New(nil, NamedProbe{"gh", &fakeProbe{host: "github.com", err: perr.New(perr.ErrorCodeTooManyRequests, "slow down")}})
	if _, err := limited.Verify(context.Background(), commitRef); !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
		t.Fatalf("want rate limited, got %v", err)
	}
}
