package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"skillproof/internal/platform/config"
	"skillproof/internal/platform/logger"
	"skillproof/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
)

// Server owns the root chi mux and the listening http.Server
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// rootStack runs for every route, including /health, swagger and pprof
func rootStack() []middleware.Middleware {
	return []middleware.Middleware{
		middleware.RequestID,
		middleware.RealIP,
		middleware.RecoverJSON,
		middleware.Heartbeat("/health"),
	}
}

// NewServer reads API_PORT and SHUTDOWN_GRACE from cfg.
// opts see the mux after the root middleware and before any route.
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	m.Use(rootStack()...)
	for _, o := range opts {
		o(m)
	}
	return &Server{
		mux:   m,
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 10*time.Second),
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("API_PORT", ":4000"),
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Run serves until ctx ends, then gives in flight requests the grace period to finish
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	served := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("listening")
		served <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-served:
		return ignoreClosed(err)
	case <-ctx.Done():
	}

	log.Info().Dur("grace", s.grace).Msg("draining")
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
	defer cancel()
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	return ignoreClosed(<-served)
}

func ignoreClosed(err error) error {
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return err
}
