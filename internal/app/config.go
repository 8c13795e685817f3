// Package app wires configuration, content, navigation and the Telegram runtime.
package app

import (
	"fmt"
	"strings"

	coreconfig "github.com/m3rciful/chroniclebot/core/config"
	coredatabase "github.com/m3rciful/chroniclebot/core/database"
)

// Content sources.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// ContentConfig selects where the catalog is loaded from.
type ContentConfig struct {
	Source string `yaml:"source" envconfig:"SOURCE"`
	// File is the YAML catalog read when Source is "file".
	File string `yaml:"file" envconfig:"FILE"`
	// Seed upserts the built-in catalog into postgres before loading.
	Seed bool `yaml:"seed" envconfig:"SEED"`
}

// Config is the full application configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database coredatabase.Config `yaml:"database"`
	Content  ContentConfig       `yaml:"content"`
}

// Load reads the YAML file at path (optional) and the environment, then validates.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return nil, err
	}
	if err := normalizeContent(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalizeContent(cfg *Config) error {
	src := strings.ToLower(strings.TrimSpace(cfg.Content.Source))
	if src == "" {
		src = SourceBuiltin
	}
	switch src {
	case SourceBuiltin:
	case SourceFile:
		if strings.TrimSpace(cfg.Content.File) == "" {
			return fmt.Errorf("content.file is required when content.source is %q", SourceFile)
		}
	case SourcePostgres:
		if strings.TrimSpace(cfg.Database.Name) == "" {
			return fmt.Errorf("database.name is required when content.source is %q", SourcePostgres)
		}
	default:
		return fmt.Errorf("invalid content.source %q; allowed: builtin, file, postgres", cfg.Content.Source)
	}
	cfg.Content.Source = src
	return nil
}
