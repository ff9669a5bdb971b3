package httpkit

import (
	"compress/flate"
	"time"

	"skillproof/internal/platform/config"
	"skillproof/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Origins []string
	Timeout time.Duration
	Slow    time.Duration
}

// StackFromConfig reads CORS_ORIGINS, TIMEOUT and SLOW_REQUEST
func StackFromConfig(c config.Conf) StackOptions {
	return StackOptions{
		Origins: c.MayCSV("CORS_ORIGINS", nil),
		Timeout: c.MayDuration("TIMEOUT", 30*time.Second),
		Slow:    c.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
	}
}

// CommonStack is the middleware of the versioned API; request ids and panic recovery sit on the root mux
func CommonStack(o StackOptions) []middleware.Middleware {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return []middleware.Middleware{
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.NoCache,
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.Origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes,
		middleware.Timeout(o.Timeout),
	}
}

// Protected mounts fn's routes behind the viewer resolved by p
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(middleware.Auth(p))
		fn(g)
	})
}
