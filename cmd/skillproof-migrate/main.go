package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	// registers the "pgx" database/sql driver goose runs on
	_ "github.com/jackc/pgx/v5/stdlib"

	"skillproof/internal/platform/config"
	"skillproof/internal/platform/logger"
	"skillproof/internal/services/evidence/migrations"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: skillproof-migrate [-timeout 2m] up|down|status|version\n")
	flag.PrintDefaults()
}

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Usage = usage
	flag.Parse()

	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	pgCfg := config.New().Prefix("SERVICE_PGSQL_")
	l := logger.Named("migrate")

	db, err := sql.Open("pgx", pgCfg.MustURL("DBURL").String())
	if err != nil {
		l.Fatal().Err(err).Msg("open postgres")
	}
	defer func() { _ = db.Close() }()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS())
	if err != nil {
		l.Fatal().Err(err).Msg("goose provider")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, provider, cmd, l); err != nil {
		l.Fatal().Err(err).Str("cmd", cmd).Msg("migrate failed")
	}
}

func run(ctx context.Context, p *goose.Provider, cmd string, l *logger.Logger) error {
	switch cmd {
	case "up":
		results, err := p.Up(ctx)
		for _, r := range results {
			l.Info().
				Int64("version", r.Source.Version).
				Str("file", r.Source.Path).
				Dur("took", r.Duration).
				Msg("applied")
		}
		if err == nil && len(results) == 0 {
			l.Info().Msg("schema is current")
		}
		return err
	case "down":
		r, err := p.Down(ctx)
		if r != nil {
			l.Info().Int64("version", r.Source.Version).Str("file", r.Source.Path).Msg("rolled back")
		}
		return err
	case "status":
		st, err := p.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range st {
			ev := l.Info().Int64("version", s.Source.Version).Str("file", s.Source.Path).Str("state", string(s.State))
			if !s.AppliedAt.IsZero() {
				ev = ev.Time("applied_at", s.AppliedAt)
			}
			ev.Msg("migration")
		}
		return nil
	case "version":
		v, err := p.GetDBVersion(ctx)
		if err != nil {
			return err
		}
		l.Info().Int64("version", v).Msg("db version")
		return nil
	}
	usage()
	return fmt.Errorf("unknown command %q", cmd)
}
