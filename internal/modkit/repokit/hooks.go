package repokit

import (
	"context"
	"strconv"
	"time"

	"skillproof/internal/platform/store"
)

// BeginHook runs at the start of a transaction with the tx bound Queryer
type BeginHook func(ctx context.Context, q Queryer) error

// StatementTimeout bounds every statement in the transaction to d
func StatementTimeout(d time.Duration) BeginHook {
	ms := strconv.FormatInt(d.Milliseconds(), 10)
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, "select set_config('statement_timeout', $1, true)", ms)
		return err
	}
}

// WithBeginHooks wraps a TxRunner and runs hooks before fn inside the same tx.
// Snapshot reads are hooked too when inner supports them
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{inner: inner, hooks: hooks}
}

type hookedTx struct {
	inner TxRunner
	hooks []BeginHook
}

func (h hookedTx) wrap(ctx context.Context, fn func(q Queryer) error) func(q Queryer) error {
	return func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	}
}

// Tx starts a tx on inner then runs all hooks before fn
func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.inner.Tx(ctx, h.wrap(ctx, fn))
}

// Snapshot runs all hooks before fn inside a read snapshot of inner
func (h hookedTx) Snapshot(ctx context.Context, fn func(q Queryer) error) error {
	return WithSnapshot(ctx, h.inner, h.wrap(ctx, fn))
}

func (h hookedTx) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	return h.inner.Exec(ctx, sql, args...)
}

func (h hookedTx) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	return h.inner.Query(ctx, sql, args...)
}

func (h hookedTx) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	return h.inner.QueryRow(ctx, sql, args...)
}
