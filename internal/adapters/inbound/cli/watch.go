package cli

import (
	"fmt"

	"github.com/openkraft/hubguard/internal/adapters/outbound/tui"
	"github.com/openkraft/hubguard/internal/adapters/outbound/watcher"
	"github.com/openkraft/hubguard/internal/application"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/wiring"
	"github.com/spf13/cobra"
)

func newWatchCmd(g *globalOptions) *cobra.Command {
	var (
		tf      targetFlags
		lf      levelFlags
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-validate hubs as their sources change",
		Long:  "Validate the target hubs once, then re-validate each hub whose sources change until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := wiring.Load(tf.path, g.log())
			if err != nil {
				return err
			}
			hubs, err := env.Hubs(tf.target())
			if err != nil {
				return err
			}
			level, err := application.SelectLevel(env.Levels, lf.name(), false)
			if err != nil {
				return err
			}

			run := func(target []domain.Hub) {
				rep, err := env.Compliance.Report(cmd.Context(), env.ProjectPath, target, level)
				if err != nil {
					env.Logger.Error("validation failed", "error", err)
					return
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderCompliance(rep, level, tui.Options{
					Verbose:        verbose,
					MigrationGuide: env.Config.MigrationGuide,
				}))
				env.FlushCache()
			}

			run(hubs)
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %d hubs, press Ctrl+C to stop\n", len(hubs))

			w := watcher.New(env.Filter, env.Config.Extensions, watcher.DefaultDebounce, env.Logger)
			return w.Watch(cmd.Context(), hubs, func(names []string) {
				run(selectHubs(hubs, names))
			})
		},
	}

	tf.register(cmd)
	lf.register(cmd)
	cmd.Flags().BoolVar(&verbose, "verbose", false, "List every violation with file, line and code")

	return cmd
}

func selectHubs(hubs []domain.Hub, names []string) []domain.Hub {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []domain.Hub
	for _, h := range hubs {
		if want[h.Name] {
			out = append(out, h)
		}
	}
	return out
}
