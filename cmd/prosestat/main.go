// Package main provides the CLI entrypoint for prosestat.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/prosestat/internal/config"
	"github.com/verte-zerg/prosestat/internal/rules"
)

const (
	defaultFormat   = "text"
	defaultSeverity = "all"
	defaultColor    = "auto"
	defaultContexts = 3
	defaultLast     = 20
	envFile         = ".env"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "prosestat",
		Short:         "Statistical style checks for lemmatized manuscripts",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

// loadFileConfig reads the config file and overlays the environment, after
// loading a .env file from the working directory.
func loadFileConfig() (config.FileConfig, error) {
	if err := config.LoadEnv(envFile); err != nil {
		return config.FileConfig{}, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyEnv(&fileCfg)
	return fileCfg, nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.Flags().BoolVar(&configPathOnly, "path", false, "print config, rules and database paths instead of opening an editor")
	return cmd
}

var configPathOnly bool

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if configPathOnly {
		out := cmd.OutOrStdout()
		lines := []string{
			"config:   " + path,
			"rules:    " + config.DefaultRulesPath(),
			"database: " + config.DefaultDBPath(),
		}
		if _, err := fmt.Fprintln(out, strings.Join(lines, "\n")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	editCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# prosestat configuration
# Uncomment a value to enable it. Environment variables %s and %s
# override the file; CLI flags override both.

[analyze]
# rules = %q
# format = %q           # text or json
# severity = %q          # all, hard or advisory
# context-chars = 60       # Characters of context on each side of a match
# context-tokens = 8       # Tokens of context when the chapter text is missing
# contexts = %d             # Contexts printed per variant or phrase
# save = true              # Archive each run in the history database
# color = %q            # auto, always or never

[history]
# db = %q
# last = %d                # Runs listed by 'prosestat history'
`,
		config.EnvRules,
		config.EnvDB,
		config.DefaultRulesPath(),
		defaultFormat,
		defaultSeverity,
		defaultContexts,
		defaultColor,
		config.DefaultDBPath(),
		defaultLast,
	)
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter rules file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInitCmd,
	}
	cmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing rules file")
	return cmd
}

var initForce bool

func runInitCmd(_ *cobra.Command, args []string) error {
	path := config.DefaultRulesPath()
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := rules.FormatFromPath(path); err != nil {
		return err
	}
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("rules file already exists: %s (use --force to overwrite)", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat rules file: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create rules directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(rules.Template), 0o644); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
