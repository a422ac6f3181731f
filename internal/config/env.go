package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvRules = "PROSESTAT_RULES"
	EnvDB    = "PROSESTAT_DB"
)

// LoadEnv loads KEY=value pairs from a .env file into the process
// environment. Variables already set win. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overlays environment overrides onto cfg.
func ApplyEnv(cfg *FileConfig) {
	if v := os.Getenv(EnvRules); v != "" {
		cfg.Analyze.Rules = &v
	}
	if v := os.Getenv(EnvDB); v != "" {
		cfg.History.DB = &v
	}
}
