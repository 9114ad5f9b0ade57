package main

import (
	"encoding/json"
	"fmt"
	"time"

	"wunderadmin/internal/domain"
)

func writeJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printSelectionState(state domain.SelectionState, jsonOutput bool) error {
	if jsonOutput {
		categories := make(map[string][]map[string]any, len(domain.ToolKinds))
		for _, kind := range domain.ToolKinds {
			tools := state.Inventory.Tools(kind)
			if len(tools) == 0 {
				continue
			}
			entries := make([]map[string]any, 0, len(tools))
			for _, tool := range tools {
				entries = append(entries, map[string]any{
					"name":        tool.Name,
					"description": tool.Description,
					"selected":    state.Selected.Has(tool.Name),
				})
			}
			categories[string(kind)] = entries
		}
		return writeJSON(map[string]any{
			"selected":   state.Selected.Names(),
			"categories": categories,
		})
	}

	for _, kind := range domain.ToolKinds {
		tools := state.Inventory.Tools(kind)
		if len(tools) == 0 {
			continue
		}
		fmt.Printf("%s (%d)\n", kind, len(tools))
		for _, tool := range tools {
			mark := " "
			if state.Selected.Has(tool.Name) {
				mark = "x"
			}
			fmt.Printf("  [%s] %s\t%s\n", mark, tool.Name, tool.Description)
		}
	}
	return nil
}

func printToggleResult(name string, checked, fullRerender bool, selected []string, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(map[string]any{
			"name":         name,
			"checked":      checked,
			"fullRerender": fullRerender,
			"selected":     selected,
		})
	}
	action := "deselected"
	if checked {
		action = "selected"
	}
	fmt.Printf("%s %s (%d enabled)\n", action, name, len(selected))
	if fullRerender {
		fmt.Println("note: mutually exclusive tools were deselected")
	}
	return nil
}

func printSkills(skills []domain.Skill, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(map[string]any{"skills": skills})
	}
	fmt.Printf("skills=%d\n", len(skills))
	for _, skill := range skills {
		fmt.Printf("%s\t%s\n", skill.Name, skill.Description)
	}
	return nil
}

func printLinks(links []domain.LinkEntry, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(map[string]any{"links": links})
	}
	fmt.Printf("links=%d\n", len(links))
	for _, link := range links {
		fmt.Printf("%s\t%s\n", link.Title, link.URL)
	}
	return nil
}

func printChannels(channels []domain.ChannelAccount, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(map[string]any{"channels": channels})
	}
	fmt.Printf("channels=%d\n", len(channels))
	for _, channel := range channels {
		state := "disabled"
		if channel.Enabled {
			state = "enabled"
		}
		fmt.Printf("%s\t%s\t%s\t%s\n", channel.Provider, channel.AccountID, channel.Label, state)
	}
	return nil
}

func printLogEntries(entries []domain.LogEntry, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(map[string]any{"entries": entries})
	}
	for _, entry := range entries {
		line := fmt.Sprintf("%s [%s] %s", entry.Time.Format(time.RFC3339), entry.Level, entry.Message)
		if entry.Logger != "" {
			line = fmt.Sprintf("%s [%s] %s %s", entry.Time.Format(time.RFC3339), entry.Level, entry.Logger, entry.Message)
		}
		fmt.Println(line)
		for key, value := range entry.Fields {
			fmt.Printf("    %s=%s\n", key, value)
		}
	}
	return nil
}
