package cli

import (
	"github.com/spf13/cobra"

	"skillproof/internal/core/provenance"
)

type detectLine struct {
	ProofRef string `json:"proof_ref"`
	provenance.Classification
}

func newDetectCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <proof-ref>...",
		Short: "Classify proof references by platform and confidence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]detectLine, 0, len(args))
			for _, ref := range args {
				out = append(out, detectLine{ProofRef: ref, Classification: provenance.Classify(ref)})
			}
			return g.write(cmd.OutOrStdout(), out)
		},
	}
}
