package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wunderadmin/internal/domain"
)

func newLinksCommand(opts *cliOptions) *cobra.Command {
	links := &cobra.Command{
		Use:   "links",
		Short: "Manage external links",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List external links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.newAPIClient()
			if err != nil {
				return err
			}
			entries, err := client.ListLinks(cmd.Context())
			if err != nil {
				return err
			}
			return printLinks(entries, opts.jsonOutput)
		},
	}

	var title string
	add := &cobra.Command{
		Use:   "add URL",
		Short: "Create an external link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newAPIClient()
			if err != nil {
				return err
			}
			link := domain.LinkEntry{Title: title, URL: args[0]}
			if err := client.CreateLink(cmd.Context(), link); err != nil {
				return err
			}
			fmt.Printf("created link %s\n", link.URL)
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "link title")

	remove := &cobra.Command{
		Use:   "remove URL",
		Short: "Delete an external link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newAPIClient()
			if err != nil {
				return err
			}
			if err := client.DeleteLink(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted link %s\n", args[0])
			return nil
		},
	}

	links.AddCommand(list, add, remove)
	return links
}
