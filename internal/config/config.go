package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"spores/internal/lexicon"
)

// Config carries the externally-configurable collaborator surfaces: the
// XRPC host records are fetched from, the content-delivery template
// blob references resolve through, and any extra lexicons the operator
// wants treated as known.
type Config struct {
	Service       string   `yaml:"service"`
	CDNTemplate   string   `yaml:"cdn_template"`
	KnownLexicons []string `yaml:"known_lexicons"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Service:     "https://public.api.bsky.app",
		CDNTemplate: lexicon.DefaultCDNTemplate,
	}
}

// Load reads a YAML config file, filling unset fields from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Service == "" {
		cfg.Service = Default().Service
	}
	if cfg.CDNTemplate == "" {
		cfg.CDNTemplate = Default().CDNTemplate
	}
	return cfg, nil
}
