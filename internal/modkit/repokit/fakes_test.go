package repokit

import (
	"context"

	"skillproof/internal/platform/store"
)

// recQ records every statement it receives
type recQ struct {
	sql  []string
	args [][]any
}

func (q *recQ) note(sql string, args []any) {
	q.sql = append(q.sql, sql)
	q.args = append(q.args, args)
}

func (q *recQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	q.note(sql, args)
	return nil, nil
}

func (q *recQ) Query(_ context.Context, sql string, args ...any) (store.Rows, error) {
	q.note(sql, args)
	return nil, nil
}

func (q *recQ) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	q.note(sql, args)
	return nil
}

// runner hands its recQ to fn; direct statements land on the same recQ
type runner struct {
	*recQ
	txs int
	err error
}

func (r *runner) Tx(_ context.Context, fn func(Queryer) error) error {
	r.txs++
	if err := fn(r.recQ); err != nil {
		return err
	}
	return r.err
}

type snapRunner struct {
	runner
	snaps int
}

func (r *snapRunner) Snapshot(_ context.Context, fn func(Queryer) error) error {
	r.snaps++
	return fn(r.recQ)
}
