package cli

import (
	"fmt"
	"strings"

	"github.com/openkraft/hubguard/internal/adapters/outbound/tui"
	"github.com/openkraft/hubguard/internal/application"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/wiring"
	"github.com/spf13/cobra"
)

func newUnifiedCmd(g *globalOptions) *cobra.Command {
	var (
		tf               targetFlags
		production       bool
		verbose          bool
		failOnViolations bool
		jsonOutput       bool
		output           string
	)

	cmd := &cobra.Command{
		Use:   "unified",
		Short: "Grade hubs on architecture and compliance together",
		Args:  cobra.NoArgs,
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

			rep, err := env.UnifiedService().Run(cmd.Context(), hubs, level)
			if err != nil {
				return fmt.Errorf("unified validation failed: %w", err)
			}

			if output != "" {
				if err := env.Reports.Write(output, rep); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			}
			if jsonOutput {
				if err := writeJSON(cmd, rep); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderUnified(rep, level, tui.Options{
					Verbose:        verbose,
					MigrationGuide: env.Config.MigrationGuide,
				}))
			}

			if failOnViolations && rep.Summary.FailedHubs > 0 {
				var failed []string
				for _, r := range rep.Results {
					if !r.Assessment.Passed {
						failed = append(failed, r.HubName)
					}
				}
				return fmt.Errorf("%w: %s", domain.ErrNotPassed, strings.Join(failed, ", "))
			}
			return nil
		},
	}

	tf.register(cmd)
	cmd.Flags().BoolVar(&production, "production", false, "Grade against the strict level")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Include each hub's violations")
	cmd.Flags().BoolVar(&failOnViolations, "fail-on-violations", false, "Exit 1 if any hub fails")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().StringVar(&output, "output", "", "Write the JSON report to this path")

	return cmd
}
