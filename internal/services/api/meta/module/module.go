// Package module mounts the public meta endpoints
package module

import (
	"time"

	modkit "skillproof/internal/modkit"
	"skillproof/internal/modkit/httpkit"
	credmod "skillproof/internal/services/api/credibility/module"
	metahttp "skillproof/internal/services/api/meta/http"
)

// Module serves /meta
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New builds the meta module; readiness pings whichever stores deps carries
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{b: b, deps: metahttp.Deps{
		ServiceName: "skillproof-api",
		StartedAt:   time.Now(),
		Checks:      []metahttp.Check{{Name: "pg", Pinger: pinger(deps.PG)}, {Name: "ch", Pinger: pinger(deps.CH)}},
		Scoring:     credmod.FromConfig(deps.Cfg).Scoring,
	}}
}

// pinger returns nil for absent stores and stores that cannot ping
func pinger(v any) metahttp.Pinger {
	p, _ := v.(metahttp.Pinger)
	return p
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

func (m *Module) Name() string { return m.b.ModuleName() }

func (m *Module) Ports() any { return nil }
