package cli

import (
	"fmt"

	"github.com/openkraft/hubguard/internal/adapters/outbound/tui"
	"github.com/openkraft/hubguard/internal/wiring"
	"github.com/spf13/cobra"
)

func newRulesCmd(g *globalOptions) *cobra.Command {
	var (
		path       string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active rule catalogue",
		Long:  "List the built-in rules plus any custom rules from .hubguard.yaml, grouped by severity.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := wiring.Load(path, g.log())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, env.Rules.Rules())
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(env.Rules))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project root")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print rules as JSON")

	return cmd
}
