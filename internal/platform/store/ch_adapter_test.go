package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillproof/internal/platform/store/ch"
)

type fakeCH struct {
	table   string
	rows    [][]any
	pingErr error
	closed  bool
	execSQL string
	result  ch.Rows
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.table, f.rows = table, rows
	return nil
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execSQL = sql
	return nil
}

func (f *fakeCH) Query(context.Context, string, ...any) (ch.Rows, error) {
	if f.result == nil {
		return nil, errors.New("no result")
	}
	return f.result, nil
}

func (f *fakeCH) Ping(context.Context) error { return f.pingErr }
func (f *fakeCH) Close() error               { f.closed = true; return nil }

type fakeCHRows struct {
	left   int
	closed bool
}

func (r *fakeCHRows) Next() bool        { r.left--; return r.left >= 0 }
func (r *fakeCHRows) Scan(...any) error { return nil }
func (r *fakeCHRows) Err() error        { return nil }
func (r *fakeCHRows) Columns() []string { return []string{"skill_id", "score"} }
func (r *fakeCHRows) Close() error      { r.closed = true; return errors.New("already closed") }

func TestCHAdapter_Insert(t *testing.T) {
	f := &fakeCH{}
	a := chAdapter{f}
	row := []any{"go", "p1", 71, "Proven", time.Unix(0, 0)}

	if err := a.Insert(context.Background(), "skill_score_snapshots", [][]any{row}); err != nil {
		t.Fatal(err)
	}
	if f.table != "skill_score_snapshots" || len(f.rows) != 1 {
		t.Fatalf("table=%q rows=%v", f.table, f.rows)
	}
	if err := a.Insert(context.Background(), "t", row); !errors.Is(err, ErrCHShape) {
		t.Fatalf("flat row err = %v", err)
	}
}

func TestCHAdapter_PassThrough(t *testing.T) {
	rows := &fakeCHRows{left: 2}
	f := &fakeCH{result: rows, pingErr: errors.New("down")}
	a := chAdapter{f}
	ctx := context.Background()

	if err := a.Exec(ctx, "OPTIMIZE TABLE skill_score_snapshots"); err != nil || f.execSQL == "" {
		t.Fatalf("exec err=%v sql=%q", err, f.execSQL)
	}
	if err := a.Ping(ctx); err == nil {
		t.Fatal("ping error swallowed")
	}
	got, err := a.Query(ctx, "SELECT 1")
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for got.Next() {
		n++
	}
	got.Close()
	if n != 2 || !rows.closed || len(got.Columns()) != 2 {
		t.Fatalf("n=%d closed=%v", n, rows.closed)
	}
	if err := a.Close(); err != nil || !f.closed {
		t.Fatalf("close err=%v closed=%v", err, f.closed)
	}

	if _, err := (chAdapter{&fakeCH{}}).Query(ctx, "SELECT 1"); err == nil {
		t.Fatal("query error swallowed")
	}
	if err := (chAdapter{}).Ping(ctx); err == nil {
		t.Fatal("nil client pinged")
	}
}
