package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "skillproof/internal/platform/errors"
	phttp "skillproof/internal/platform/net/http"
	"skillproof/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, r Router, method, path, body string) (int, Envelope) {
	t.Helper()
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	var env Envelope
	if rr.Body.Len() > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: not an envelope: %s", method, path, rr.Body.String())
		}
	}
	return rr.Code, env
}

func TestCall(t *testing.T) {
	cases := []struct {
		name   string
		fn     func(*http.Request) (any, error)
		status int
		code   perr.ErrorCode
	}{
		{"value", func(*http.Request) (any, error) { return map[string]int{"score": 80}, nil }, http.StatusOK, 0},
		{"response", func(*http.Request) (any, error) { return Error(perr.NotFoundf("no profile")), nil }, http.StatusNotFound, perr.ErrorCodeNotFound},
		{"project error", func(*http.Request) (any, error) { return nil, perr.Forbiddenf("private") }, http.StatusForbidden, perr.ErrorCodeForbidden},
		{"error wins over value", func(*http.Request) (any, error) { return "x", errors.New("boom") }, http.StatusInternalServerError, perr.ErrorCodeUnknown},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := phttp.AdaptChi(chi.NewRouter())
			Get(r, "/x", c.fn)
			status, env := serve(t, r, http.MethodGet, "/x", "")
			if status != c.status || env.Code != c.code {
				t.Fatalf("status=%d env=%+v", status, env)
			}
		})
	}
}

type detectIn struct {
	ProofRef string `json:"proof_ref" validate:"required"`
}

func TestPostJSON(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	PostJSON(r, "/detect", func(_ *http.Request, in detectIn) (any, error) { return in.ProofRef, nil })

	status, env := serve(t, r, http.MethodPost, "/detect", `{"proof_ref":"https://github.com/a/b"}`)
	if status != http.StatusOK || env.Data != "https://github.com/a/b" {
		t.Fatalf("status=%d env=%+v", status, env)
	}
	status, env = serve(t, r, http.MethodPost, "/detect", `{}`)
	if status != http.StatusBadRequest || env.Field != "proof_ref" {
		t.Fatalf("status=%d env=%+v", status, env)
	}
}

func TestMountAPI(t *testing.T) {
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Scoped", "1")
			next.ServeHTTP(w, r)
		})
	}
	r := phttp.AdaptChi(chi.NewRouter())
	ping := func(api Router) { Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil }) }
	MountAPIV1(r, []middleware.Middleware{tag}, ping)
	MountAPI(r, "/v2", nil, ping)

	cases := []struct {
		path   string
		status int
		scoped bool
	}{
		{"/api/v1/ping", http.StatusOK, true},
		{"/api/v2/ping", http.StatusOK, false},
		{"/ping", http.StatusNotFound, false},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, c.path, nil))
		if rr.Code != c.status || (rr.Header().Get("X-Scoped") == "1") != c.scoped {
			t.Errorf("%s: status=%d scoped=%q", c.path, rr.Code, rr.Header().Get("X-Scoped"))
		}
	}
}
