package cli

import (
	"fmt"
	"strings"

	"github.com/openkraft/hubguard/internal/adapters/outbound/metrics"
	"github.com/openkraft/hubguard/internal/adapters/outbound/tui"
	"github.com/openkraft/hubguard/internal/application"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/wiring"
	"github.com/spf13/cobra"
)

func newValidateCmd(g *globalOptions) *cobra.Command {
	var (
		tf               targetFlags
		lf               levelFlags
		production       bool
		verbose          bool
		failOnViolations bool
		jsonOutput       bool
		output           string
		metricsFile      string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Scan hubs for hand-rolled infrastructure",
		Long:  "Scan hub sources against the rule catalogue and judge each hub against a compliance level. Reports only, unless --fail-on-violations is set.",
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
			level, err := application.SelectLevel(env.Levels, lf.name(), production)
			if err != nil {
				return err
			}

			rep, err := env.Compliance.Report(cmd.Context(), env.ProjectPath, hubs, level)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			if output != "" {
				if err := env.Reports.Write(output, rep); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
			}
			if metricsFile != "" {
				if err := metrics.New().Export(metricsFile, rep); err != nil {
					return fmt.Errorf("writing metrics: %w", err)
				}
			}

			if jsonOutput {
				if err := writeJSON(cmd, rep); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderCompliance(rep, level, tui.Options{
					Verbose:        verbose,
					MigrationGuide: env.Config.MigrationGuide,
				}))
			}

			if failOnViolations && !rep.AllCompliant() {
				return fmt.Errorf("%w: %s", domain.ErrNonCompliant, strings.Join(rep.NonCompliantHubs(), ", "))
			}
			return nil
		},
	}

	tf.register(cmd)
	lf.register(cmd)
	cmd.Flags().BoolVar(&production, "production", false, "Production mode: strict level unless one is given")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "List every violation with file, line and code")
	cmd.Flags().BoolVar(&failOnViolations, "fail-on-violations", false, "Exit 1 if any hub is non-compliant")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	cmd.Flags().StringVar(&output, "output", "", "Write the JSON report to this path")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")

	return cmd
}
