package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"spores/internal/config"
	"spores/internal/lexicon"
	"spores/internal/pds"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath  string
	serviceHost string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "spores",
	Short: "Presentation-ready field extraction for atproto records",
	Long: "Spores resolves records of any lexicon into canonical display fields\n" +
		"(title, content, images, date, ...) with a confidence score and a\nsuggested layout.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&serviceHost, "service", os.Getenv("SPORES_SERVICE"),
		"XRPC host for record fetching (can also use SPORES_SERVICE env var)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if serviceHost != "" {
		cfg.Service = serviceHost
	}
	return cfg, nil
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newEngine(cfg config.Config, logger *zap.Logger) *lexicon.Engine {
	registry := lexicon.DefaultRegistry()
	registry.MarkKnown(cfg.KnownLexicons...)
	return lexicon.NewEngine(registry,
		lexicon.WithCDNTemplate(cfg.CDNTemplate),
		lexicon.WithLogger(logger))
}

// loadRecord reads a record from a JSON file or fetches it by at:// URI.
// A file may hold either a full record envelope (uri, cid, value) or a
// bare value payload.
func loadRecord(ctx context.Context, cfg config.Config, atURI, filePath string) (lexicon.Record, error) {
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return lexicon.Record{}, fmt.Errorf("failed to read record file: %w", err)
		}
		var rec lexicon.Record
		if err := json.Unmarshal(data, &rec); err == nil && rec.Value != nil {
			return rec, nil
		}
		var value map[string]any
		if err := json.Unmarshal(data, &value); err != nil {
			return lexicon.Record{}, fmt.Errorf("failed to parse record file: %w", err)
		}
		return lexicon.Record{Value: value}, nil
	}
	if atURI == "" {
		return lexicon.Record{}, fmt.Errorf("an at:// URI or a record file is required")
	}
	client := pds.NewClient(cfg.Service)
	rec, err := client.GetRecord(ctx, atURI)
	if err != nil {
		return lexicon.Record{}, err
	}
	return *rec, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
