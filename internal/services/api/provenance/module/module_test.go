package module

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"skillproof/internal/core/evidence"
	modkit "skillproof/internal/modkit"
	"skillproof/internal/platform/config"
	phttp "skillproof/internal/platform/net/http"
	"skillproof/internal/services/api/provenance/domain"
)

func TestFromConfig(t *testing.T) {
	o := FromConfig(config.New())
	if o.Timeout != 10*time.Second || o.GitHubMaxRetries != 3 || o.UserAgent != "skillproof-verify" || o.MaxInflight != 8 {
		t.Fatalf("defaults=%+v", o)
	}
	t.Setenv("CORE_VERIFY_GITHUB_TOKENS", "a,b")
	t.Setenv("CORE_VERIFY_TIMEOUT", "2s")
	o = FromConfig(config.New())
	if o.GitHubTokensCSV != "a,b" || o.Timeout != 2*time.Second {
		t.Fatalf("overrides=%+v", o)
	}
}

func TestNew_VerifiesAgainstConfiguredRegistry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/left-pad/1.2.0" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	t.Setenv("CORE_VERIFY_NPM_BASE_URL", srv.URL)

	m := New(modkit.Deps{Cfg: config.New()})
	port, ok := m.Ports().(domain.ServicePort)
	if !ok {
		t.Fatalf("ports=%T", m.Ports())
	}
	got, err := port.Verify(context.Background(), "https://www.npmjs.com/package/left-pad/v/1.2.0")
	if err != nil || got.Status != evidence.VerificationVerified || got.Probe != "registry" {
		t.Fatalf("outcome=%+v err=%v", got, err)
	}
	got, err = port.Verify(context.Background(), "https://www.npmjs.com/package/left-pad/v/9.9.9")
	if err != nil || got.Status != evidence.VerificationRefuted {
		t.Fatalf("outcome=%+v err=%v", got, err)
	}
}

func TestMountRoutes_RequiresJSONBodies(t *testing.T) {
	mux := chi.NewRouter()
	New(modkit.Deps{Cfg: config.New()}).MountRoutes(phttp.AdaptChi(mux))

	post := func(ct string) int {
		req := httptest.NewRequest(http.MethodPost, "/provenance/detect", strings.NewReader(`{"proof_ref":"not a url"}`))
		req.Header.Set("Content-Type", ct)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		return rr.Code
	}
	if code := post("text/plain"); code != http.StatusUnsupportedMediaType {
		t.Fatalf("text/plain status=%d", code)
	}
	if code := post("application/json"); code != http.StatusOK {
		t.Fatalf("json status=%d", code)
	}
}
