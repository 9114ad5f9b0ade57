package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wunderadmin/internal/domain"
)

func newSkillsCommand(opts *cliOptions) *cobra.Command {
	skills := &cobra.Command{
		Use:   "skills",
		Short: "Manage skills",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.newAPIClient()
			if err != nil {
				return err
			}
			entries, err := client.ListSkills(cmd.Context())
			if err != nil {
				return err
			}
			return printSkills(entries, opts.jsonOutput)
		},
	}

	var description, content string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newAPIClient()
			if err != nil {
				return err
			}
			skill := domain.Skill{
				Name:        args[0],
				Description: description,
				Content:     content,
			}
			if err := client.CreateSkill(cmd.Context(), skill); err != nil {
				return err
			}
			fmt.Printf("created skill %s\n", skill.Name)
			return nil
		},
	}
	add.Flags().StringVar(&description, "description", "", "skill description")
	add.Flags().StringVar(&content, "content", "", "skill prompt content")

	remove := &cobra.Command{
		Use:   "remove NAME",
		Short: "Delete a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newAPIClient()
			if err != nil {
				return err
			}
			if err := client.DeleteSkill(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted skill %s\n", args[0])
			return nil
		},
	}

	skills.AddCommand(list, add, remove)
	return skills
}
