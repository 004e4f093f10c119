package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-wego/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenarios",
	Long: `Shows every registered scenario: the built-in ones and those found in
the configured scenario directory.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenarios := registry.List()

	if len(scenarios) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, sc := range scenarios {
		maxIDLen = max(maxIDLen, len(sc.ID))
		maxTitleLen = max(maxTitleLen, len(sc.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Regiments")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "---------")

	for _, sc := range scenarios {
		fmt.Printf("  %-*s  %-*s  %d\n", maxIDLen, sc.ID, maxTitleLen, sc.Title, sc.Regiments)
		if sc.Description != "" {
			fmt.Printf("  %-*s  %s\n", maxIDLen, "", sc.Description)
		}
	}

	fmt.Println()
	fmt.Println("Run 'wego play <id>' to play a scenario.")
}
