package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ib-77/validated/internal/logging"
)

type app struct {
	logLevel string
	logger   *slog.Logger
}

// newRootCmd builds the command tree. Each call returns an independent tree
// so tests can run commands side by side.
func newRootCmd() *cobra.Command {
	a := &app{logger: logging.NewNop()}

	root := &cobra.Command{
		Use:   "vcheck",
		Short: "Validate server settings files",
		Long: `vcheck validates a server settings file (YAML, TOML or JSON) field by field
and reports the first-party cause of every failure exactly once.
Environment variables prefixed with VCHECK_ override file values.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := logging.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logging.New(cmd.ErrOrStderr(), level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newCheckCmd(a), newWatchCmd(a))
	return root
}
