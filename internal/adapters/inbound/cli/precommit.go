package cli

import (
	"errors"
	"fmt"

	"github.com/openkraft/hubguard/internal/adapters/outbound/tui"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/wiring"
	"github.com/spf13/cobra"
)

func newPrecommitCmd(g *globalOptions) *cobra.Command {
	var (
		path    string
		staged  []string
		verbose bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "precommit",
		Short: "Block commits that touch non-compliant hubs",
		Long:  "Map staged files to hubs and hold every touched hub to the strict level. Commits touching no hub pass without scanning.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := wiring.Load(path, g.log())
			if err != nil {
				return err
			}
			defer env.FlushCache()
			strict, err := env.Levels.Lookup(domain.LevelStrict)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("staged") {
				staged = nil
			} else if staged == nil {
				staged = []string{}
			}

			rep, err := env.CommitService().Check(cmd.Context(), env.ProjectPath, staged)
			if err != nil && !errors.Is(err, domain.ErrCommitBlocked) {
				return err
			}

			if output != "" {
				if werr := env.Reports.Write(output, rep); werr != nil {
					return errors.Join(err, fmt.Errorf("writing report: %w", werr))
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderCommit(rep, strict, tui.Options{
				Verbose:        verbose,
				MigrationGuide: env.Config.MigrationGuide,
			}))
			return err
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project root")
	cmd.Flags().StringSliceVar(&staged, "staged", nil, "Staged paths to check instead of reading the git index")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "List every violation with file, line and code")
	cmd.Flags().StringVar(&output, "output", "", "Write the JSON commit report to this path")

	return cmd
}
