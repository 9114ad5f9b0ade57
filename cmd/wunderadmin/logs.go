package main

import (
	"github.com/spf13/cobra"
)

func newLogsCommand(opts *cliOptions) *cobra.Command {
	var tail int

	logs := &cobra.Command{
		Use:   "logs",
		Short: "Show recent server logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.newAPIClient()
			if err != nil {
				return err
			}
			if tail <= 0 {
				tail = opts.cfg.LogTail
			}
			entries, err := client.FetchLogs(cmd.Context(), tail)
			if err != nil {
				return err
			}
			return printLogEntries(entries, opts.jsonOutput)
		},
	}
	logs.Flags().IntVar(&tail, "tail", 0, "number of log entries to fetch")
	return logs
}
