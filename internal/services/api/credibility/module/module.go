// Package module wires credibility scoring into the API using modkit
package module

import (
	modkit "skillproof/internal/modkit"
	"skillproof/internal/modkit/httpkit"
	cdom "skillproof/internal/services/api/credibility/domain"
	chttp "skillproof/internal/services/api/credibility/http"
	crepo "skillproof/internal/services/api/credibility/repo"
	csvc "skillproof/internal/services/api/credibility/service"
	evdom "skillproof/internal/services/evidence/domain"
)

// Ports declares the evidence ports this module consumes
type Ports struct {
	Reader evdom.ReaderPort
	Access evdom.AccessPort
}

// Module serves profile and skill credibility
type Module struct {
	b   modkit.Built
	svc csvc.Service
}

// New constructs the credibility module; evidence ports must be injected with modkit.WithPorts
// scores are mirrored to clickhouse only when snapshots are on and a CH store is configured
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("credibility"),
		modkit.WithPrefix("/credibility"),
	}, opts...)...)

	in, _ := b.Ports.(Ports)
	if in.Reader == nil || in.Access == nil {
		panic("credibility module requires Reader and Access ports (from services/evidence)")
	}

	cfg := FromConfig(deps.Cfg)
	var sink cdom.SnapshotSink
	if cfg.Snapshots && deps.CH != nil {
		sink = crepo.NewCH(deps.CH)
	}
	return &Module{b: b, svc: csvc.New(in.Reader, in.Access, sink, csvc.Config{Scoring: cfg.Scoring})}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { chttp.Register(rr, m.svc) })
}

func (m *Module) Name() string { return m.b.ModuleName() }

// Ports exposes the scoring workflows as a domain.ServicePort
func (m *Module) Ports() any { return cdom.ServicePort(m.svc) }
