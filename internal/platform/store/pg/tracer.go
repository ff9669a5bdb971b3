package pg

import (
	"context"
	"strings"

	"skillproof/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one executed statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives one event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs failed statements at error and slow ones at warn
// with all set every other statement is logged at debug too, whatever the root level
func Tracer(root logger.Logger, all bool) QueryTracer {
	l := root.With().Str("component", "pg").Logger()
	if all {
		l = l.Level(zerolog.DebugLevel)
	}
	return &zlTracer{log: l, all: all}
}

type zlTracer struct {
	log logger.Logger
	all bool
}

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	var e *zerolog.Event
	switch {
	case ev.Err != nil:
		e = z.log.Error().Err(ev.Err)
	case ev.Slow:
		e = z.log.Warn()
	case z.all:
		e = z.log.Debug()
	default:
		return
	}
	e.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Msg("pg query")
}

// compact folds whitespace runs so multi line statements log on one line
func compact(sql string) string { return strings.Join(strings.Fields(sql), " ") }
