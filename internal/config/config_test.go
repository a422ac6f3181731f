package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Analyze.Rules != nil || cfg.History.DB != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfig_Values(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[analyze]
rules = "rules.toml"
severity = "hard"
context-chars = 40
save = false

[history]
db = "/tmp/runs.db"
last = 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Analyze.Rules == nil || *cfg.Analyze.Rules != "rules.toml" {
		t.Fatalf("unexpected rules: %v", cfg.Analyze.Rules)
	}
	if cfg.Analyze.Severity == nil || *cfg.Analyze.Severity != "hard" {
		t.Fatalf("unexpected severity: %v", cfg.Analyze.Severity)
	}
	if cfg.Analyze.ContextChars == nil || *cfg.Analyze.ContextChars != 40 {
		t.Fatalf("unexpected context-chars: %v", cfg.Analyze.ContextChars)
	}
	if cfg.Analyze.Save == nil || *cfg.Analyze.Save {
		t.Fatalf("expected save = false")
	}
	if cfg.Analyze.Format != nil {
		t.Fatalf("expected unset format")
	}
	if cfg.History.Last == nil || *cfg.History.Last != 5 {
		t.Fatalf("unexpected last: %v", cfg.History.Last)
	}
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[analyze]\nrulez = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "analyze.rulez") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadEnvAndApply(t *testing.T) {
	t.Setenv(EnvRules, "")
	t.Setenv(EnvDB, "/already/set.db")
	path := filepath.Join(t.TempDir(), ".env")
	body := "PROSESTAT_RULES=from-env.toml\nPROSESTAT_DB=/from/file.db\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// godotenv leaves variables that are already set, including empty ones.
	if err := os.Unsetenv(EnvRules); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}
	if err := LoadEnv(path); err != nil {
		t.Fatalf("load env: %v", err)
	}

	var cfg FileConfig
	ApplyEnv(&cfg)
	if cfg.Analyze.Rules == nil || *cfg.Analyze.Rules != "from-env.toml" {
		t.Fatalf("unexpected rules: %v", cfg.Analyze.Rules)
	}
	if cfg.History.DB == nil || *cfg.History.DB != "/already/set.db" {
		t.Fatalf("unexpected db: %v", cfg.History.DB)
	}
}

func TestLoadEnv_Missing(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "prosestat", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultRulesPath(); got != filepath.Join("/cfg", "prosestat", "rules.toml") {
		t.Fatalf("unexpected rules path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "prosestat", "prosestat.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
