package middleware

import (
	"net/http"

	"skillproof/internal/platform/logger"
	pnet "skillproof/internal/platform/net"
)

// AuthPort resolves the viewer of a request
type AuthPort interface {
	Parse(r *http.Request) (viewerID string, err error)
}

// Auth stores the viewer resolved by p on the context and rejects requests p refuses.
// A nil port admits everyone anonymously.
func Auth(p AuthPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			vid, err := p.Parse(r)
			if err != nil {
				pnet.Write(w, pnet.Failure(err, pnet.RequestID(r.Context())))
				return
			}
			ctx := pnet.WithViewer(r.Context(), vid)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), vid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
