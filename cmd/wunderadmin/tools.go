package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newToolsCommand(opts *cliOptions) *cobra.Command {
	tools := &cobra.Command{
		Use:   "tools",
		Short: "Inspect and edit the tool selection",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Reconcile against the inventory and print the selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, manager, err := opts.newSession()
			if err != nil {
				return err
			}
			defer store.Close()

			state, err := manager.Reconcile(cmd.Context(), opts.cfg.UserID)
			if err != nil {
				return err
			}
			return printSelectionState(state, opts.jsonOutput)
		},
	}

	toggle := func(checked bool) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			name := args[0]
			store, manager, err := opts.newSession()
			if err != nil {
				return err
			}
			defer store.Close()

			state, err := manager.Reconcile(cmd.Context(), opts.cfg.UserID)
			if err != nil {
				return err
			}
			if _, _, found := state.Inventory.Lookup(name); !found {
				return exitWithMessage(1, fmt.Sprintf("unknown tool %q", name))
			}
			full := manager.Toggle(name, checked)
			return printToggleResult(name, checked, full, manager.SelectedNames(), opts.jsonOutput)
		}
	}

	selectCmd := &cobra.Command{
		Use:   "select NAME",
		Short: "Enable a tool for prompting",
		Args:  cobra.ExactArgs(1),
		RunE:  toggle(true),
	}

	deselect := &cobra.Command{
		Use:   "deselect NAME",
		Short: "Disable a tool for prompting",
		Args:  cobra.ExactArgs(1),
		RunE:  toggle(false),
	}

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Drop the cached selection so the next load starts fresh",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store, _, err := opts.newSession()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(opts.cfg.UserID); err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(map[string]any{"reset": true, "user": opts.cfg.UserID})
			}
			fmt.Println("selection cache cleared")
			return nil
		},
	}

	tools.AddCommand(list, selectCmd, deselect, reset)
	return tools
}
