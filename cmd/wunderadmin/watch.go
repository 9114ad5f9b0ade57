package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wunderadmin/internal/app/console"
)

func newWatchCommand(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the console in the foreground, reconciling on an interval",
		Long: "Runs until interrupted: reconciles the tool selection on the " +
			"configured poll interval, hot-reloads the config file, and " +
			"serves /metrics when observability is enabled.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runtime, err := console.NewRuntime(opts.configPath, opts.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := runtime.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}
