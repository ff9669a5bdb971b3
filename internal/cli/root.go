// Package cli implements the skillproof command line: detect, score and timeline over local data
package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"

	"skillproof/internal/core/maturity"
	"skillproof/internal/platform/config"
	perr "skillproof/internal/platform/errors"
	credmod "skillproof/internal/services/api/credibility/module"
)

// globals shared by every subcommand
type globals struct {
	pretty bool
	now    string
}

// NewRoot builds the command tree
func NewRoot() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "skillproof",
		Short:         "Score skill evidence and narrate its history",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&g.pretty, "pretty", false, "indent JSON output")
	root.PersistentFlags().StringVar(&g.now, "now", "", "reference time (RFC3339) for recency and relative phrasing")

	root.AddCommand(newDetectCmd(g), newScoreCmd(g), newTimelineCmd(g))
	return root
}

// scoring reads CORE_SCORING_* and applies --now
func (g *globals) scoring() (maturity.Options, error) {
	opts := credmod.FromConfig(config.New()).Scoring
	if g.now == "" {
		return opts, nil
	}
	at, err := time.Parse(time.RFC3339, g.now)
	if err != nil {
		return opts, perr.WithField(perr.InvalidArgf("--now must be RFC3339: %v", err), "now")
	}
	opts.Now = func() time.Time { return at }
	return opts, nil
}

func (g *globals) write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if g.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
