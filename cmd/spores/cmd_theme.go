package main

import (
	"github.com/spf13/cobra"

	"spores/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme <did-or-handle>",
	Short: "Derive the deterministic visual theme for an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(theme.Generate(args[0]))
	},
}
