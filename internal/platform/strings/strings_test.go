package strings

import (
	"testing"

	"skillproof/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()
	def := []string{"GET"}
	if got := IfEmpty(nil, def); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("nil input: %v", got)
	}
	if got := IfEmpty([]string{"POST"}, def); got[0] != "POST" {
		t.Fatalf("non empty input replaced: %v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()
	if got := MustString("credibility", "name"); got != "credibility" {
		t.Fatalf("got %q", got)
	}
	testkit.MustPanic(t, func() { _ = MustString("   ", "name") })
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]string{
		"/credibility/":   "/credibility",
		" provenance  ":   "/provenance",
		"//meta//":        "/meta",
		"/api/v1/things/": "/api/v1/things",
	} {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "/", "  //  "} {
		testkit.MustPanic(t, func() { _ = MustPrefix(in) })
	}
}

func TestPtrDeref(t *testing.T) {
	t.Parallel()
	if Ptr("  ") != nil || Deref(nil) != "" {
		t.Fatal("blank should map to nil and back to empty")
	}
	if p := Ptr("Widget"); p == nil || Deref(p) != "Widget" {
		t.Fatalf("round trip lost value: %v", p)
	}
}
