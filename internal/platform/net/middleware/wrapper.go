// Package middleware exposes the chi and cors middleware the API uses without leaking chi types
package middleware

import (
	"net/http"
	"time"

	pstrings "skillproof/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the net/http decorator shape
type Middleware = func(http.Handler) http.Handler

var (
	// RequestID reuses an inbound X-Request-Id or mints one
	RequestID    Middleware = chimw.RequestID
	RealIP       Middleware = chimw.RealIP
	NoCache      Middleware = chimw.NoCache
	// StripSlashes routes /a/ as /a
	StripSlashes Middleware = chimw.StripSlashes
)

func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Compress gzips responses at level (compress/flate constants)
func Compress(level int) Middleware {
	return chimw.NewCompressor(level).Handler
}

// AllowContentType answers 415 to bodies outside ct
func AllowContentType(ct ...string) Middleware { return chimw.AllowContentType(ct...) }

// ThrottleBacklog admits limit requests at once and queues backlog more for up to wait; the rest get 429
func ThrottleBacklog(limit, backlog int, wait time.Duration) Middleware {
	return chimw.ThrottleBacklog(limit, backlog, wait)
}

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"}
)

// CORS applies go-chi/cors; empty method and header lists take the API defaults
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-Id"}),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
