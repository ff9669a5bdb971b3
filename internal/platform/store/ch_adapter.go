package store

import (
	"context"
	"errors"
	"fmt"

	"skillproof/internal/platform/store/ch"
)

// chClient is what the adapter needs from *ch.CH
type chClient interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// ErrCHShape rejects Insert payloads other than [][]any
var ErrCHShape = errors.New("store: clickhouse insert wants [][]any")

// chAdapter exposes a chClient as the Clickhouse seam; Exec and Close pass straight through
type chAdapter struct{ chClient }

var (
	_ Clickhouse = chAdapter{}
	_ Pinger     = chAdapter{}
)

func newCHAdapter(c *ch.CH) Clickhouse { return chAdapter{c} }

func (a chAdapter) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return fmt.Errorf("%w, got %T", ErrCHShape, data)
	}
	return a.chClient.Insert(ctx, table, rows)
}

func (a chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.chClient.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

func (a chAdapter) Ping(ctx context.Context) error {
	if a.chClient == nil {
		return errors.New("store: clickhouse not connected")
	}
	return a.chClient.Ping(ctx)
}

// chRows drops the driver's Close error to fit Rows
type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
