package middleware

import (
	"net/http"
	"time"

	"skillproof/internal/platform/logger"
	pnet "skillproof/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type AccessLogOptions struct {
	// Slow raises requests at or above this duration to warn; zero never does
	Slow time.Duration
	// Log replaces the request scoped logger; tests only
	Log *logger.Logger
}

// AccessLog tags the request logger with the request id and writes one line per request
func AccessLog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), "")
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			log := opt.Log
			if log == nil {
				log = logger.C(ctx)
			}
			elapsed := time.Since(start)
			evt := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request")
		})
	}
}
