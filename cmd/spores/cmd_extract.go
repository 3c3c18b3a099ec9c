package main

import (
	"github.com/spf13/cobra"

	"spores/internal/lexicon"
)

var extractFile string

// extractResult is the CLI's full view of one record: the canonical
// fields plus the two signals a renderer needs.
type extractResult struct {
	Fields     lexicon.Fields     `json:"fields"`
	Confidence lexicon.Confidence `json:"confidence"`
	Layout     lexicon.Suggestion `json:"layout"`
}

var extractCmd = &cobra.Command{
	Use:   "extract [at-uri]",
	Short: "Extract canonical display fields from a record",
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
		rec, err := loadRecord(cmd.Context(), cfg, atURI, extractFile)
		if err != nil {
			return err
		}

		logger := newLogger()
		defer logger.Sync()
		engine := newEngine(cfg, logger)

		fields := engine.ExtractFields(rec)
		return printJSON(extractResult{
			Fields:     fields,
			Confidence: engine.ExtractionConfidence(rec),
			Layout:     engine.SuggestLayout(rec),
		})
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "",
		"Read the record from a JSON file instead of fetching it")
}
