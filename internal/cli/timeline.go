package cli

import (
	"github.com/spf13/cobra"

	credsvc "skillproof/internal/services/api/credibility/service"
)

func newTimelineCmd(g *globals) *cobra.Command {
	var (
		src     source
		project string
	)
	cmd := &cobra.Command{
		Use:     "timeline",
		Short:   "Narrate the evidence of one skill in chronological order",
		Example: `  skillproof timeline --file evidence.json --skill go --name Go --project Widget`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scoring, err := g.scoring()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			reader, profileID, closeFn, err := src.open(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			svc := credsvc.New(reader, operator{}, nil, credsvc.Config{Scoring: scoring})
			tl, err := svc.Timeline(ctx, "", profileID, src.skill, project)
			if err != nil {
				return err
			}
			return g.write(cmd.OutOrStdout(), tl)
		},
	}
	bindSource(cmd, &src)
	cmd.Flags().StringVar(&project, "project", "", "project context for every sentence")
	_ = cmd.MarkFlagRequired("skill")
	return cmd
}
