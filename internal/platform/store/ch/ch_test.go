package ch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"

	"skillproof/internal/platform/testkit"
)

type fakeBatch struct {
	rows    [][]any
	sent    bool
	aborted bool
	failAt  int
}

func (b *fakeBatch) Append(v ...any) error {
	if b.failAt > 0 && len(b.rows)+1 == b.failAt {
		return errors.New("bad column")
	}
	b.rows = append(b.rows, v)
	return nil
}
func (b *fakeBatch) Send() error { b.sent = true; return nil }
func (b *fakeBatch) Abort() error { b.aborted = true; return nil }

type fakeConn struct {
	pingErr  error
	prepared []string
	batch    *fakeBatch
	closed   bool
}

func (f *fakeConn) Ping(context.Context) error { return f.pingErr }
func (f *fakeConn) Exec(context.Context, string, ...any) error { return nil }
func (f *fakeConn) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (f *fakeConn) PrepareBatch(_ context.Context, q string) (batch, error) {
	f.prepared = append(f.prepared, q)
	return f.batch, nil
}
func (f *fakeConn) Close() error { f.closed = true; return nil }

func TestOpen_EmptyDSN(t *testing.T) {
	t.Parallel()
	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestOpen_PingFailureCloses(t *testing.T) {
	testkit.Serial(t)
	fc := &fakeConn{pingErr: errors.New("refused")}
	testkit.Swap(t, &open, func(*clickhouse.Options) (conn, error) { return fc, nil })

	_, err := Open(context.Background(), Config{URL: "clickhouse://localhost:9000/default"})
	if err == nil || !strings.Contains(err.Error(), "ping") {
		t.Fatalf("err=%v", err)
	}
	if !fc.closed {
		t.Fatalf("connection not closed after failed ping")
	}
}

func TestOpen_PassesClientInfo(t *testing.T) {
	testkit.Serial(t)
	var got *clickhouse.Options
	testkit.Swap(t, &open, func(o *clickhouse.Options) (conn, error) {
		got = o
		return &fakeConn{}, nil
	})
	info := BuildClientInfo("skillproof", "api")
	if _, err := Open(context.Background(), Config{URL: "clickhouse://localhost:9000/default", ClientInfo: info}); err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(got.ClientInfo.Products) == 0 || got.ClientInfo.Products[0].Name != "skillproof" {
		t.Fatalf("client info not applied: %+v", got.ClientInfo)
	}
}

func TestInsert_Batches(t *testing.T) {
	t.Parallel()
	fc := &fakeConn{batch: &fakeBatch{}}
	c := &CH{c: fc}
	rows := [][]any{{"a", 1}, {"b", 2}}
	if err := c.Insert(context.Background(), "skill_score_snapshots", rows); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(fc.prepared) != 1 || fc.prepared[0] != "INSERT INTO skill_score_snapshots" {
		t.Fatalf("prepared=%v", fc.prepared)
	}
	if !fc.batch.sent || len(fc.batch.rows) != 2 {
		t.Fatalf("batch=%+v", fc.batch)
	}
}

func TestInsert_AbortOnAppendError(t *testing.T) {
	t.Parallel()
	fc := &fakeConn{batch: &fakeBatch{failAt: 2}}
	c := &CH{c: fc}
	err := c.Insert(context.Background(), "t", [][]any{{1}, {2}})
	if err == nil || !fc.batch.aborted || fc.batch.sent {
		t.Fatalf("err=%v batch=%+v", err, fc.batch)
	}
}

func TestInsert_RejectsBadTable(t *testing.T) {
	t.Parallel()
	c := &CH{c: &fakeConn{}}
	for _, name := range []string{"", "t; drop table x", "1abc", "a.b.c"} {
		if err := c.Insert(context.Background(), name, [][]any{{1}}); err == nil {
			t.Fatalf("table %q accepted", name)
		}
	}
	if err := c.Insert(context.Background(), "analytics.snapshots", nil); err != nil {
		t.Fatalf("empty insert should be a no-op: %v", err)
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()
	info := BuildClientInfo("", " api ")
	if info.Products[0].Name != "skillproof" || info.Products[0].Version != "api" {
		t.Fatalf("products=%+v", info.Products)
	}
}
