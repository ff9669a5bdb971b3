// Package module wires proof detection and verification into the API using modkit
package module

import (
	gh "skillproof/internal/adapters/github"
	"skillproof/internal/adapters/registry"
	"skillproof/internal/core/provenance"
	modkit "skillproof/internal/modkit"
	"skillproof/internal/modkit/httpkit"
	"skillproof/internal/platform/net/middleware"
	phttp "skillproof/internal/services/api/provenance/http"
	psvc "skillproof/internal/services/api/provenance/service"
)

// Module serves proof detection and verification
type Module struct {
	b   modkit.Built
	svc psvc.Service
}

// New constructs the provenance module with GitHub and registry probes
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	cfg := FromConfig(deps.Cfg)
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("provenance"),
		modkit.WithPrefix("/provenance"),
		modkit.WithMiddlewares(
			middleware.AllowContentType("application/json"),
			middleware.ThrottleBacklog(max(1, cfg.MaxInflight), max(0, cfg.Backlog), cfg.BacklogWait),
		),
	}, opts...)...)

	ghc := gh.NewClient(gh.Options{
		BaseURL:    cfg.GitHubBaseURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.Timeout,
		TokensCSV:  cfg.GitHubTokensCSV,
		MaxRetries: cfg.GitHubMaxRetries,
		RetryBase:  cfg.GitHubRetryBase,
	})
	reg := registry.NewProbe(registry.Options{
		NPMBaseURL:  cfg.NPMBaseURL,
		PyPIBaseURL: cfg.PyPIBaseURL,
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.Timeout,
	})

	svc := psvc.New(provenance.Default(),
		psvc.NamedProbe{Name: "github", Probe: gh.NewProbe(ghc)},
		psvc.NamedProbe{Name: "registry", Probe: reg},
	)

	return &Module{b: b, svc: svc}
}

// Ports returns the service as a domain.ServicePort
func (m *Module) Ports() any { return m.svc }

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { phttp.Register(rr, m.svc) })
}

func (m *Module) Name() string { return m.b.ModuleName() }
