package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wunderadmin/internal/domain"
)

func newChannelsCommand(opts *cliOptions) *cobra.Command {
	channels := &cobra.Command{
		Use:   "channels",
		Short: "Manage channel accounts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List channel accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.newAPIClient()
			if err != nil {
				return err
			}
			entries, err := client.ListChannels(cmd.Context())
			if err != nil {
				return err
			}
			return printChannels(entries, opts.jsonOutput)
		},
	}

	var label string
	var disabled bool
	add := &cobra.Command{
		Use:   "add PROVIDER ACCOUNT_ID",
		Short: "Bind a channel account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newAPIClient()
			if err != nil {
				return err
			}
			account := domain.ChannelAccount{
				Provider:  args[0],
				AccountID: args[1],
				Label:     label,
				Enabled:   !disabled,
			}
			if err := client.CreateChannel(cmd.Context(), account); err != nil {
				return err
			}
			fmt.Printf("created channel %s/%s\n", account.Provider, account.AccountID)
			return nil
		},
	}
	add.Flags().StringVar(&label, "label", "", "display label")
	add.Flags().BoolVar(&disabled, "disabled", false, "create the account disabled")

	remove := &cobra.Command{
		Use:   "remove PROVIDER ACCOUNT_ID",
		Short: "Unbind a channel account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newAPIClient()
			if err != nil {
				return err
			}
			if err := client.DeleteChannel(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("deleted channel %s/%s\n", args[0], args[1])
			return nil
		},
	}

	channels.AddCommand(list, add, remove)
	return channels
}
