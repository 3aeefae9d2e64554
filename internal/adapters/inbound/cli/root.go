package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// globalOptions carries the persistent flags and the logger built from them.
type globalOptions struct {
	logLevel string
	logJSON  bool
	logger   *slog.Logger
}

func (g *globalOptions) setup(cmd *cobra.Command) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(g.logLevel)); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	if g.logJSON {
		h = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	}
	g.logger = slog.New(h)
	return nil
}

func (g *globalOptions) log() *slog.Logger {
	if g.logger == nil {
		return slog.Default()
	}
	return g.logger
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "hubguard",
		Short: "Keep hubs on shared infrastructure",
		Long:  "hubguard scans monorepo hubs for hand-rolled infrastructure, gates builds and commits on compliance, and grades hub architecture.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "Emit logs as JSON")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd(g))
	cmd.AddCommand(newBuildCmd(g))
	cmd.AddCommand(newPrecommitCmd(g))
	cmd.AddCommand(newUnifiedCmd(g))
	cmd.AddCommand(newRulesCmd(g))
	cmd.AddCommand(newWatchCmd(g))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd(g))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI until completion or interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}
