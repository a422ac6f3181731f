// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analyze AnalyzeConfig `toml:"analyze"`
	History HistoryConfig `toml:"history"`
}

// AnalyzeConfig maps analysis-related settings.
type AnalyzeConfig struct {
	Rules         *string `toml:"rules"`
	Format        *string `toml:"format"`
	Severity      *string `toml:"severity"`
	ContextChars  *int    `toml:"context-chars"`
	ContextTokens *int    `toml:"context-tokens"`
	Contexts      *int    `toml:"contexts"`
	Save          *bool   `toml:"save"`
	Color         *string `toml:"color"`
}

// HistoryConfig maps run archive settings.
type HistoryConfig struct {
	DB   *string `toml:"db"`
	Last *int    `toml:"last"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return FileConfig{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return cfg, nil
}
