package middleware

import (
	"net/http"
	"runtime/debug"

	perr "skillproof/internal/platform/errors"
	"skillproof/internal/platform/logger"
	pnet "skillproof/internal/platform/net"
)

// RecoverJSON turns a handler panic into a 500 envelope and logs the stack
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			reqID := pnet.RequestID(r.Context())
			logger.C(r.Context()).Error().
				Str("component", "http").
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			pnet.Write(w, pnet.Failure(perr.PanicErrf("internal error"), reqID))
		}()
		next.ServeHTTP(w, r)
	})
}
