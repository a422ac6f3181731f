package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/prosestat/internal/config"
	"github.com/verte-zerg/prosestat/internal/corpus"
	"github.com/verte-zerg/prosestat/internal/engine"
	"github.com/verte-zerg/prosestat/internal/model"
	"github.com/verte-zerg/prosestat/internal/report"
	"github.com/verte-zerg/prosestat/internal/rules"
	"github.com/verte-zerg/prosestat/internal/store"
	"github.com/verte-zerg/prosestat/internal/textnorm"
)

var (
	analyzeRules         string
	analyzeFormat        string
	analyzeSeverity      string
	analyzeContextChars  int
	analyzeContextTokens int
	analyzeContexts      int
	analyzeSave          bool
	analyzeDB            string
	analyzeColor         string
	analyzeVerbose       bool
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <corpus>",
		Short: "Run the style rules over a token-stream corpus",
		Long: `Run the style rules over a corpus exported by an external lemmatizer.

The corpus is a JSON document with every chapter, a directory of per-chapter
JSON files, or "-" for a document on stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}
	cmd.Flags().StringVar(&analyzeRules, "rules", "", "rules file (.toml, .yaml or .yml)")
	cmd.Flags().StringVar(&analyzeFormat, "format", defaultFormat, "output format: text or json")
	cmd.Flags().StringVar(&analyzeSeverity, "severity", defaultSeverity, "show findings of this severity: all, hard or advisory")
	cmd.Flags().IntVar(&analyzeContextChars, "context-chars", -1, "characters of context around a match (default from rules file)")
	cmd.Flags().IntVar(&analyzeContextTokens, "context-tokens", -1, "tokens of context when chapter text is missing (default from rules file)")
	cmd.Flags().IntVar(&analyzeContexts, "contexts", defaultContexts, "contexts printed per variant or phrase in text output")
	cmd.Flags().BoolVar(&analyzeSave, "save", true, "archive the run in the history database")
	cmd.Flags().StringVar(&analyzeDB, "db", "", "history database path")
	cmd.Flags().StringVar(&analyzeColor, "color", defaultColor, "color output: auto, always or never")
	cmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "log analysis progress to stderr")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "rules", &analyzeRules, fileCfg.Analyze.Rules)
	applyStringConfig(cmd, "format", &analyzeFormat, fileCfg.Analyze.Format)
	applyStringConfig(cmd, "severity", &analyzeSeverity, fileCfg.Analyze.Severity)
	applyIntConfig(cmd, "context-chars", &analyzeContextChars, fileCfg.Analyze.ContextChars)
	applyIntConfig(cmd, "context-tokens", &analyzeContextTokens, fileCfg.Analyze.ContextTokens)
	applyIntConfig(cmd, "contexts", &analyzeContexts, fileCfg.Analyze.Contexts)
	applyBoolConfig(cmd, "save", &analyzeSave, fileCfg.Analyze.Save)
	applyStringConfig(cmd, "db", &analyzeDB, fileCfg.History.DB)
	applyStringConfig(cmd, "color", &analyzeColor, fileCfg.Analyze.Color)

	if err := validateAnalyzeFlags(); err != nil {
		return err
	}
	rulesPath, err := resolveRulesPath(analyzeRules)
	if err != nil {
		return err
	}

	norm := textnorm.New(0)
	compiled, err := rules.LoadCompiled(rulesPath, norm)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	book, err := corpus.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	opts := engine.Options{Normalizer: norm}
	if analyzeVerbose {
		opts.Logger = log.New(os.Stderr, "prosestat: ", 0)
	}
	if analyzeContextChars >= 0 || analyzeContextTokens >= 0 {
		window := compiled.Context
		if analyzeContextChars >= 0 {
			window.Chars = analyzeContextChars
		}
		if analyzeContextTokens >= 0 {
			window.Tokens = analyzeContextTokens
		}
		opts.Window = &window
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := engine.Run(ctx, book, compiled, opts)
	if err != nil {
		return err
	}

	if analyzeSave {
		if err := saveRun(ctx, res, args[0], rulesPath); err != nil {
			logErrf("failed to save run: %v\n", err)
		}
	}

	if analyzeSeverity != defaultSeverity {
		res = res.Filter(model.SeverityFromName(analyzeSeverity))
	}
	out := cmd.OutOrStdout()
	if analyzeFormat == "json" {
		return writeJSON(out, res)
	}
	return report.RenderResult(out, res, report.Options{
		Painter:  report.NewPainter(useColor(analyzeColor, out)),
		Contexts: analyzeContexts,
	})
}

func validateAnalyzeFlags() error {
	switch analyzeFormat {
	case "text", "json":
	default:
		return fmt.Errorf("--format must be text or json")
	}
	if analyzeSeverity != defaultSeverity && model.SeverityFromName(analyzeSeverity) < 0 {
		return fmt.Errorf("--severity must be all, hard or advisory")
	}
	switch analyzeColor {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("--color must be auto, always or never")
	}
	if analyzeContexts < 0 {
		return fmt.Errorf("--contexts must be >= 0")
	}
	return nil
}

// resolveRulesPath falls back to the rules file written by init.
func resolveRulesPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	path = config.DefaultRulesPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("no rules file given and %s does not exist (run: prosestat init)", path)
		}
		return "", fmt.Errorf("failed to stat rules file: %w", err)
	}
	return path, nil
}

func saveRun(ctx context.Context, res engine.Result, corpusPath, rulesPath string) error {
	dbPath := analyzeDB
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	id, err := st.InsertRun(ctx, res.Record(corpusPath, rulesPath))
	if err != nil {
		return err
	}
	if analyzeVerbose {
		logErrln("Saved run", id)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return report.IsTerminal(w)
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [rules]",
		Short: "Check a rules file without analyzing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runValidateCmd,
	}
	return cmd
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	var validateRules string
	if fileCfg.Analyze.Rules != nil {
		validateRules = *fileCfg.Analyze.Rules
	}
	if len(args) == 1 {
		validateRules = args[0]
	}
	path, err := resolveRulesPath(validateRules)
	if err != nil {
		return err
	}
	compiled, err := rules.LoadCompiled(path, textnorm.New(0))
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	out := cmd.OutOrStdout()
	sets := append(append([]string(nil), rules.RuleSets...), rules.SetContext)
	for _, set := range sets {
		status := "ok"
		if ferr := compiled.Failed(set); ferr != nil {
			status = ferr.Error()
		} else if !configured(compiled, set) {
			status = "not configured"
		}
		if _, err := fmt.Fprintf(out, "%-13s %s\n", set, status); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := compiled.Err(); err != nil {
		return fmt.Errorf("%s has configuration errors", path)
	}
	return nil
}

func configured(c *rules.Compiled, set string) bool {
	switch set {
	case rules.SetOveruse:
		return c.Overuse != nil
	case rules.SetFamilies:
		return c.Families != nil
	case rules.SetCrutchWords:
		return c.CrutchWords != nil
	case rules.SetPhrases:
		return c.Phrases != nil
	}
	return true
}
