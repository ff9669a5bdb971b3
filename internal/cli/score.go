package cli

import (
	"github.com/spf13/cobra"

	credsvc "skillproof/internal/services/api/credibility/service"
)

func newScoreCmd(g *globals) *cobra.Command {
	var src source
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute skill maturity and the profile credibility summary",
		Example: `  skillproof score --file profile.json --pretty
  skillproof score --db snapshot.db --profile 6f1c2d3e-0000-4000-8000-000000000001
  skillproof score --file evidence.json --skill go --name Go`,
		Args: cobra.NoArgs,
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
			if src.skill != "" {
				res, err := svc.Skill(ctx, "", profileID, src.skill)
				if err != nil {
					return err
				}
				return g.write(cmd.OutOrStdout(), res)
			}
			res, err := svc.Profile(ctx, "", profileID)
			if err != nil {
				return err
			}
			return g.write(cmd.OutOrStdout(), res)
		},
	}
	bindSource(cmd, &src)
	return cmd
}

func bindSource(cmd *cobra.Command, src *source) {
	f := cmd.Flags()
	f.StringVar(&src.file, "file", "", "JSON profile snapshot or evidence array")
	f.StringVar(&src.db, "db", "", "sqlite snapshot database")
	f.StringVar(&src.profile, "profile", "", "profile id (required with --db)")
	f.StringVar(&src.skill, "skill", "", "skill id")
	f.StringVar(&src.name, "name", "", "skill name override for --file input")
}
