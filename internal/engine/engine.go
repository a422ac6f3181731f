// Package engine runs the configured analyses over one corpus.
//
// The overuse, family, rate and phrase analyses are independent: each reads
// the shared corpus and compiled rules and writes only its own Result field,
// so they run concurrently. A rule set that failed to compile, or whose
// analysis rejected the input, is reported in Result.Skipped while the others
// still produce findings.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/prosestat/internal/freq"
	"github.com/verte-zerg/prosestat/internal/model"
	"github.com/verte-zerg/prosestat/internal/overuse"
	"github.com/verte-zerg/prosestat/internal/phrase"
	"github.com/verte-zerg/prosestat/internal/rate"
	"github.com/verte-zerg/prosestat/internal/rules"
	"github.com/verte-zerg/prosestat/internal/snippet"
	"github.com/verte-zerg/prosestat/internal/textnorm"
)

// Options tunes a run.
type Options struct {
	// Logger receives progress messages. nil means no logging.
	Logger *log.Logger
	// Normalizer is shared by the surface-form analyses. nil selects a fresh one.
	Normalizer *textnorm.Normalizer
	// Window overrides the snippet sizes from the rules file.
	Window *snippet.Options
}

// Skip names a rule set that produced no findings and why.
type Skip struct {
	RuleSet string `json:"rule_set"`
	Reason  string `json:"reason"`
}

// Result holds every finding of one run.
type Result struct {
	Chapters    int                        `json:"chapters"`
	TotalWords  int                        `json:"total_words"`
	Frequencies *model.LemmaFrequencyTable `json:"frequencies,omitempty"`
	Overuse     []model.OveruseFinding     `json:"overuse"`
	Families    []model.FamilyReport       `json:"families"`
	Rates       []model.RateFinding        `json:"rates"`
	Phrases     []model.PhraseFinding      `json:"phrases"`
	Skipped     []Skip                     `json:"skipped"`
}

// Run validates the corpus and runs every configured rule set. Only an
// invalid corpus or a cancelled context fail the whole run.
func Run(ctx context.Context, corpus model.Corpus, rs *rules.Compiled, opts Options) (Result, error) {
	if err := corpus.Validate(); err != nil {
		return Result{}, err
	}
	if rs == nil {
		rs = &rules.Compiled{Context: snippet.DefaultOptions()}
	}
	norm := opts.Normalizer
	if norm == nil {
		norm = textnorm.New(0)
	}
	window := rs.Context
	if opts.Window != nil {
		window = *opts.Window
	}

	res := Result{Chapters: len(corpus.Chapters), TotalWords: corpus.TotalWords()}
	failures := make(map[string]error, len(rules.RuleSets))

	type task struct {
		ruleSet string
		run     func(context.Context) error
	}
	var tasks []task
	if rs.Overuse != nil {
		tasks = append(tasks, task{rules.SetOveruse, func(ctx context.Context) error {
			table, err := freq.Aggregate(ctx, corpus, rs.Overuse.Focus)
			if err != nil {
				return err
			}
			res.Frequencies = &table
			res.Overuse = overuse.Detect(table, rs.Overuse.Thresholds, rs.Overuse.Severity)
			return nil
		}})
	}
	if rs.Families != nil {
		tasks = append(tasks, task{rules.SetFamilies, func(ctx context.Context) error {
			reports, err := rs.Families.Scan(ctx, corpus, window)
			res.Families = reports
			return err
		}})
	}
	if rs.CrutchWords != nil {
		tasks = append(tasks, task{rules.SetCrutchWords, func(ctx context.Context) error {
			findings, err := rate.Scan(ctx, corpus, rs.CrutchWords.Words, rs.CrutchWords.Benchmarks, norm)
			res.Rates = findings
			return err
		}})
	}
	if rs.Phrases != nil {
		tasks = append(tasks, task{rules.SetPhrases, func(ctx context.Context) error {
			findings, err := phrase.Scan(ctx, corpus, *rs.Phrases, norm, window)
			res.Phrases = findings
			return err
		}})
	}

	errs := make([]error, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range tasks {
		g.Go(func() error {
			start := time.Now()
			err := t.run(gctx)
			if isCancel(err) {
				return err
			}
			errs[i] = err
			logf(opts.Logger, "%s: done in %s", t.ruleSet, time.Since(start).Round(time.Millisecond))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("analysis cancelled: %w", err)
	}
	for i, t := range tasks {
		if errs[i] != nil {
			failures[t.ruleSet] = errs[i]
		}
	}

	sets := append(append([]string(nil), rules.RuleSets...), rules.SetContext)
	for _, set := range sets {
		if err := rs.Failed(set); err != nil {
			res.Skipped = append(res.Skipped, skip(set, err))
			logf(opts.Logger, "%s: %v", set, err)
			continue
		}
		if err := failures[set]; err != nil {
			res.Skipped = append(res.Skipped, skip(set, err))
			clearSet(&res, set)
			logf(opts.Logger, "%s: %v", set, err)
		}
	}
	return res, nil
}

func skip(set string, err error) Skip {
	if errors.Is(err, model.ErrConfiguration) {
		return Skip{RuleSet: set, Reason: fmt.Sprintf("skipped due to configuration error: %v", err)}
	}
	return Skip{RuleSet: set, Reason: fmt.Sprintf("skipped: %v", err)}
}

// clearSet drops partial output of a failed analysis.
func clearSet(res *Result, set string) {
	switch set {
	case rules.SetOveruse:
		res.Frequencies, res.Overuse = nil, nil
	case rules.SetFamilies:
		res.Families = nil
	case rules.SetCrutchWords:
		res.Rates = nil
	case rules.SetPhrases:
		res.Phrases = nil
	}
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func logf(l *log.Logger, format string, args ...any) {
	if l != nil {
		l.Printf(format, args...)
	}
}
