// Package module implements the evidence service module
package module

import (
	"skillproof/internal/modkit"
	"skillproof/internal/modkit/httpkit"
	"skillproof/internal/services/evidence/domain"
	"skillproof/internal/services/evidence/repo"
	"skillproof/internal/services/evidence/service"
)

// Ports exposed by the evidence module
type Ports struct {
	Reader domain.ReaderPort
	Access domain.AccessPort
}

// Module implements the evidence service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the evidence module over the postgres seam in deps
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(deps.PG, repo.NewPG(), service.Config{
		StatementTimeout: opts.StatementTimeout,
	})

	return &Module{deps: deps, ports: Ports{Reader: svc, Access: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "evidence" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module; evidence has no routes of its own
func (m *Module) MountRoutes(httpkit.Router) {}
