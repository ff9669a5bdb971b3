// Package modkit provides module wiring and core deps
package modkit

import (
	"skillproof/internal/modkit/repokit"
	"skillproof/internal/platform/config"
	"skillproof/internal/platform/logger"
	"skillproof/internal/platform/store"
)

// Deps holds core dependencies passed to modules; nil stores mean the backend is disabled
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
