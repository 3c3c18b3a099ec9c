package main

import (
	"github.com/spf13/cobra"
)

var layoutFile string

var layoutCmd = &cobra.Command{
	Use:   "layout [at-uri]",
	Short: "Suggest a presentation layout for a record",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		atURI := ""
		if len(args) > 0 {
			atURI = args[0]
		}
		rec, err := loadRecord(cmd.Context(), cfg, atURI, layoutFile)
		if err != nil {
			return err
		}

		logger := newLogger()
		defer logger.Sync()
		engine := newEngine(cfg, logger)

		return printJSON(engine.SuggestLayout(rec))
	},
}

func init() {
	layoutCmd.Flags().StringVarP(&layoutFile, "file", "f", "",
		"Read the record from a JSON file instead of fetching it")
}
