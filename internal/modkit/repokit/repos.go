// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"context"

	"skillproof/internal/platform/store"
)

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

// SnapshotRunner can execute a function against one consistent read snapshot
type SnapshotRunner = store.SnapshotRunner

// WithSnapshot runs fn inside a read snapshot when tx offers one and falls back to a plain transaction
func WithSnapshot(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	if s, ok := tx.(SnapshotRunner); ok {
		return s.Snapshot(ctx, fn)
	}
	return tx.Tx(ctx, fn)
}
