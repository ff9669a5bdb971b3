package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "skillproof/internal/platform/errors"
	pnet "skillproof/internal/platform/net"
)

// TokenFunc resolves a bearer token to a viewer id
type TokenFunc func(token string) (viewerID string, ok bool)

// Port is a middleware.AuthPort over the Authorization header
type Port struct{ resolve TokenFunc }

func NewPortFunc(fn TokenFunc) *Port { return &Port{resolve: fn} }

// Parse answers unauthorized for a missing or unknown bearer token
func (p *Port) Parse(r *http.Request) (string, error) {
	tok, err := Bearer(r)
	if err != nil {
		return "", err
	}
	if p.resolve != nil {
		if vid, ok := p.resolve(tok); ok && vid != "" {
			return vid, nil
		}
	}
	return "", perr.Unauthorizedf("invalid bearer token")
}

// StaticTokens resolves against a fixed token:viewer table
func StaticTokens(table map[string]string) TokenFunc {
	return func(token string) (string, bool) {
		for tok, vid := range table {
			if subtle.ConstantTimeCompare([]byte(tok), []byte(token)) == 1 {
				return vid, true
			}
		}
		return "", false
	}
}

// Bearer extracts the token of an "Authorization: Bearer <token>" header, scheme matched case-insensitively
func Bearer(r *http.Request) (string, error) {
	scheme, tok, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	tok = strings.TrimSpace(tok)
	if !strings.EqualFold(scheme, "bearer") || tok == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return tok, nil
}

// Viewer is the caller resolved by the auth middleware
func Viewer(r *http.Request) (string, error) {
	if vid := pnet.ViewerID(r.Context()); vid != "" {
		return vid, nil
	}
	return "", perr.Unauthorizedf("missing bearer token")
}
