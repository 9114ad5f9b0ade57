package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCommand(opts *cliOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after overrides",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if opts.jsonOutput {
				return writeJSON(opts.cfg)
			}
			data, err := yaml.Marshal(opts.cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	configCmd.AddCommand(show)
	return configCmd
}
