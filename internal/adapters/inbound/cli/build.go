package cli

import (
	"fmt"

	"github.com/openkraft/hubguard/internal/adapters/outbound/tui"
	"github.com/openkraft/hubguard/internal/application"
	"github.com/openkraft/hubguard/internal/wiring"
	"github.com/spf13/cobra"
)

func newBuildCmd(g *globalOptions) *cobra.Command {
	var (
		tf         targetFlags
		production bool
		skipBuild  bool
		verbose    bool
		output     string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build hubs once they pass compliance",
		Long: `Check compliance first, then run each hub's build script in hub order.

Production mode requires every hub to pass the strict level and stops at the
first failed build. Development mode only halts on critical violations and
records build failures without stopping.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := wiring.Load(tf.path, g.log())
			if err != nil {
				return err
			}
			defer env.FlushCache()
			hubs, err := env.Hubs(tf.target())
			if err != nil {
				return err
			}
			level, err := application.SelectLevel(env.Levels, "", production)
			if err != nil {
				return err
			}

			rep, err := env.BuildService().Run(cmd.Context(), env.ProjectPath, hubs, application.BuildOptions{
				Production: production,
				SkipBuild:  skipBuild,
				Output:     output,
			})
			if rep.Outcome != "" {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderBuild(rep, level, tui.Options{
					Verbose:        verbose,
					MigrationGuide: env.Config.MigrationGuide,
				}))
			}
			return err
		},
	}

	tf.register(cmd)
	cmd.Flags().BoolVar(&production, "production", false, "Production mode: strict level, abort on first build failure")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Check compliance and report, but never build")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "List every violation with file, line and code")
	cmd.Flags().StringVar(&output, "output", "", "Write the JSON build report to this path")

	return cmd
}
