package repokit

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

type evidenceRepo struct{ q Queryer }

func TestBindFunc_BindsGivenQueryer(t *testing.T) {
	t.Parallel()

	q := &recQ{}
	var b Binder[evidenceRepo] = BindFunc[evidenceRepo](func(q Queryer) evidenceRepo { return evidenceRepo{q: q} })
	if got := b.Bind(q); got.q != q {
		t.Fatalf("bound queryer %v want %v", got.q, q)
	}
}

func TestWithSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	noop := func(Queryer) error { return nil }

	snap := &snapRunner{runner: runner{recQ: &recQ{}}}
	if err := WithSnapshot(ctx, snap, noop); err != nil || snap.snaps != 1 || snap.txs != 0 {
		t.Fatalf("snapshot runner: err=%v snaps=%d txs=%d", err, snap.snaps, snap.txs)
	}

	plain := &runner{recQ: &recQ{}}
	boom := errors.New("boom")
	if err := WithSnapshot(ctx, plain, func(Queryer) error { return boom }); !errors.Is(err, boom) || plain.txs != 1 {
		t.Fatalf("fallback: err=%v txs=%d", err, plain.txs)
	}
}

func TestWithBeginHooks_Order(t *testing.T) {
	t.Parallel()

	var seq []string
	mark := func(s string) BeginHook {
		return func(_ context.Context, q Queryer) error {
			_, err := q.Exec(context.Background(), s)
			seq = append(seq, s)
			return err
		}
	}

	cases := []struct {
		name  string
		inner TxRunner
		run   func(TxRunner, func(Queryer) error) error
	}{
		{"tx", &runner{recQ: &recQ{}}, func(r TxRunner, fn func(Queryer) error) error { return r.Tx(context.Background(), fn) }},
		{"snapshot", &snapRunner{runner: runner{recQ: &recQ{}}}, func(r TxRunner, fn func(Queryer) error) error {
			return WithSnapshot(context.Background(), r, fn)
		}},
	}
	for _, c := range cases {
		seq = nil
		r := WithBeginHooks(c.inner, mark("h1"), mark("h2"))
		if err := c.run(r, func(Queryer) error { seq = append(seq, "fn"); return nil }); err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if !reflect.DeepEqual(seq, []string{"h1", "h2", "fn"}) {
			t.Fatalf("%s: seq = %v", c.name, seq)
		}
	}
}

func TestWithBeginHooks_FailingHookSkipsRest(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	ran := false
	r := WithBeginHooks(&runner{recQ: &recQ{}},
		func(context.Context, Queryer) error { return boom },
		func(context.Context, Queryer) error { ran = true; return nil },
	)
	err := r.Tx(context.Background(), func(Queryer) error { ran = true; return nil })
	if !errors.Is(err, boom) || ran {
		t.Fatalf("err=%v ran=%v", err, ran)
	}
}

func TestWithBeginHooks_DirectStatementsSkipHooks(t *testing.T) {
	t.Parallel()

	inner := &runner{recQ: &recQ{}}
	r := WithBeginHooks(inner, func(context.Context, Queryer) error {
		t.Fatal("hook must only run inside Tx")
		return nil
	})
	ctx := context.Background()
	_, _ = r.Exec(ctx, "update evidence set verification = $1", "verified")
	_, _ = r.Query(ctx, "select id from skills")
	_ = r.QueryRow(ctx, "select 1")

	want := []string{"update evidence set verification = $1", "select id from skills", "select 1"}
	if !reflect.DeepEqual(inner.sql, want) {
		t.Fatalf("sql = %v", inner.sql)
	}
}

func TestStatementTimeout_SetsLocalConfig(t *testing.T) {
	t.Parallel()

	q := &recQ{}
	if err := StatementTimeout(1500*time.Millisecond)(context.Background(), q); err != nil {
		t.Fatalf("hook: %v", err)
	}
	if len(q.sql) != 1 || !strings.Contains(q.sql[0], "statement_timeout") || !reflect.DeepEqual(q.args[0], []any{"1500"}) {
		t.Fatalf("sql=%v args=%v", q.sql, q.args)
	}
}

type fakeGuard struct{ err error }

func (f fakeGuard) Guard(context.Context) error { return f.err }

func TestMustGuard(t *testing.T) {
	t.Parallel()

	MustGuard(context.Background(), fakeGuard{})

	defer func() {
		err, ok := recover().(error)
		if !ok || !strings.Contains(err.Error(), "dependency guard failed: pg down") {
			t.Fatalf("unexpected panic value %v", err)
		}
	}()
	MustGuard(context.Background(), fakeGuard{err: errors.New("pg down")})
}
