package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/prosestat/internal/family"
	"github.com/verte-zerg/prosestat/internal/model"
	"github.com/verte-zerg/prosestat/internal/overuse"
	"github.com/verte-zerg/prosestat/internal/snippet"
	"github.com/verte-zerg/prosestat/internal/textnorm"
	"github.com/verte-zerg/prosestat/internal/wordlist"
)

// Rule set names as used in configuration errors and skip reports.
const (
	SetOveruse     = "overuse"
	SetFamilies    = family.RuleSet
	SetCrutchWords = "crutch_words"
	SetPhrases     = "phrases"
	SetContext     = "context"
)

// RuleSets lists the analysis rule sets in reporting order.
var RuleSets = []string{SetOveruse, SetFamilies, SetCrutchWords, SetPhrases}

// DefaultOveruse holds the thresholds used when a rules file leaves them out.
var DefaultOveruse = overuse.Thresholds{MinTotal: 25, MinChapter: 6, MinShare: 0.25}

// Default severities per rule set.
const (
	DefaultOveruseSeverity = model.SeverityAdvisory
	DefaultFamilySeverity  = model.SeverityHard
	DefaultCrutchSeverity  = model.SeverityAdvisory
	DefaultPhraseSeverity  = model.SeverityAdvisory
)

// OveruseRules is the compiled overuse rule set.
type OveruseRules struct {
	Focus      []string
	Thresholds overuse.Thresholds
	Severity   model.Severity
}

// CrutchWord is a watched word with its rate threshold per 10,000 words.
type CrutchWord struct {
	Word      string
	Threshold float64
	Severity  model.Severity
}

// Benchmark is reference usage of Word in a published book.
type Benchmark struct {
	Title string
	Word  string
	Words int
	Count int
}

// CrutchRules is the compiled crutch word rule set.
type CrutchRules struct {
	Words      []CrutchWord
	Benchmarks []Benchmark
}

// PhraseRules is the compiled stock phrase rule set.
type PhraseRules struct {
	Phrases  []string
	MinHits  int
	Severity model.Severity
}

// Failure records a rule set that could not be compiled.
type Failure struct {
	RuleSet string
	Err     error
}

// Compiled is the immutable configuration shared by every analyzer.
// A nil rule set is not configured; a failed one is listed in Failures.
type Compiled struct {
	Overuse     *OveruseRules
	Families    *family.Registry
	CrutchWords *CrutchRules
	Phrases     *PhraseRules
	Context     snippet.Options
	Failures    []Failure
}

// Failed returns the compile error of a rule set, or nil.
func (c *Compiled) Failed(ruleSet string) error {
	for _, f := range c.Failures {
		if f.RuleSet == ruleSet {
			return f.Err
		}
	}
	return nil
}

// Err joins every failure, or returns nil when all rule sets compiled.
func (c *Compiled) Err() error {
	errs := make([]error, 0, len(c.Failures))
	for _, f := range c.Failures {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}

// Compile validates each rule set of f independently and reads the list
// files it references.
func Compile(f *File, norm *textnorm.Normalizer) *Compiled {
	c := &Compiled{Context: snippet.DefaultOptions()}
	fail := func(set string, err error) {
		c.Failures = append(c.Failures, Failure{RuleSet: set, Err: err})
	}

	if f.FocusLemmasFile != "" || f.Overuse != nil {
		if rs, err := compileOveruse(f); err != nil {
			fail(SetOveruse, err)
		} else {
			c.Overuse = rs
		}
	}
	if f.FamiliesFile != "" || f.Families != nil {
		if reg, err := compileFamilies(f, norm); err != nil {
			fail(SetFamilies, err)
		} else {
			c.Families = reg
		}
	}
	if f.CrutchWords != nil {
		if rs, err := compileCrutch(f, norm); err != nil {
			fail(SetCrutchWords, err)
		} else {
			c.CrutchWords = rs
		}
	}
	if f.Phrases != nil {
		if rs, err := compilePhrases(f, norm); err != nil {
			fail(SetPhrases, err)
		} else {
			c.Phrases = rs
		}
	}
	if f.Context != nil {
		if opts, err := compileContext(f.Context); err != nil {
			fail(SetContext, err)
		} else {
			c.Context = opts
		}
	}
	return c
}

// LoadCompiled loads and compiles a rules file.
func LoadCompiled(path string, norm *textnorm.Normalizer) (*Compiled, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Compile(f, norm), nil
}

func compileOveruse(f *File) (*OveruseRules, error) {
	sec := f.Overuse
	if sec == nil {
		sec = &OveruseSection{}
	}
	rs := &OveruseRules{Thresholds: DefaultOveruse}
	sev, err := parseSeverity(SetOveruse, "severity", sec.Severity, DefaultOveruseSeverity)
	if err != nil {
		return nil, err
	}
	rs.Severity = sev

	if sec.MinTotal != nil {
		if *sec.MinTotal <= 0 {
			return nil, &model.ConfigError{RuleSet: SetOveruse, Field: "min_total", Reason: "must be positive"}
		}
		rs.Thresholds.MinTotal = *sec.MinTotal
	}
	if sec.MinChapter != nil {
		if *sec.MinChapter <= 0 {
			return nil, &model.ConfigError{RuleSet: SetOveruse, Field: "min_chapter", Reason: "must be positive"}
		}
		rs.Thresholds.MinChapter = *sec.MinChapter
	}
	if sec.MinShare != nil {
		if *sec.MinShare <= 0 || *sec.MinShare > 1 {
			return nil, &model.ConfigError{RuleSet: SetOveruse, Field: "min_share", Reason: "must be in (0, 1]"}
		}
		rs.Thresholds.MinShare = *sec.MinShare
	}

	lemmas := append([]string(nil), sec.Lemmas...)
	if f.FocusLemmasFile != "" {
		words, err := wordlist.LoadWords(f.resolve(f.FocusLemmasFile))
		if err != nil {
			return nil, &model.ConfigError{RuleSet: SetOveruse, Field: "focus_lemmas_file", Reason: err.Error()}
		}
		lemmas = append(lemmas, words...)
	}
	for i, l := range lemmas {
		lemmas[i] = strings.ToLower(strings.TrimSpace(l))
	}
	rs.Focus = nonEmpty(wordlist.Dedupe(lemmas))
	if len(rs.Focus) == 0 {
		return nil, &model.ConfigError{RuleSet: SetOveruse, Field: "lemmas", Reason: "no focus lemmas configured"}
	}
	return rs, nil
}

func compileFamilies(f *File, norm *textnorm.Normalizer) (*family.Registry, error) {
	sec := f.Families
	if sec == nil {
		sec = &FamiliesSection{}
	}
	def, err := parseSeverity(SetFamilies, "severity", sec.Severity, DefaultFamilySeverity)
	if err != nil {
		return nil, err
	}
	entries := append([]FamilyEntry(nil), sec.List...)
	if f.FamiliesFile != "" {
		fromFile, err := LoadStyle(f.resolve(f.FamiliesFile))
		if err != nil {
			return nil, err
		}
		entries = append(entries, fromFile...)
	}
	if len(entries) == 0 {
		return nil, &model.ConfigError{RuleSet: SetFamilies, Reason: "no style families configured (add entries of the form: preferred <= alt1, alt2)"}
	}

	families := make([]model.StyleFamily, 0, len(entries))
	for _, e := range entries {
		sev, err := parseSeverity(SetFamilies, e.Preferred, e.Severity, def)
		if err != nil {
			return nil, err
		}
		families = append(families, model.StyleFamily{
			Preferred: strings.TrimSpace(e.Preferred),
			Variants:  e.Variants,
			Severity:  sev,
		})
	}
	return family.NewRegistry(families, norm)
}

func compileCrutch(f *File, norm *textnorm.Normalizer) (*CrutchRules, error) {
	sec := f.CrutchWords
	def, err := parseSeverity(SetCrutchWords, "severity", sec.Severity, DefaultCrutchSeverity)
	if err != nil {
		return nil, err
	}
	if len(sec.List) == 0 {
		return nil, &model.ConfigError{RuleSet: SetCrutchWords, Reason: "no crutch words configured"}
	}
	rs := &CrutchRules{}
	seen := make(map[string]struct{}, len(sec.List))
	for i, e := range sec.List {
		word := strings.TrimSpace(e.Word)
		if word == "" {
			return nil, &model.ConfigError{RuleSet: SetCrutchWords, Field: fmt.Sprintf("word %d", i+1), Reason: "word is empty"}
		}
		key := norm.Phrase(word)
		if _, dup := seen[key]; dup {
			return nil, &model.ConfigError{RuleSet: SetCrutchWords, Field: word, Reason: "listed twice"}
		}
		seen[key] = struct{}{}
		if e.Threshold == nil || *e.Threshold <= 0 {
			return nil, &model.ConfigError{RuleSet: SetCrutchWords, Field: word, Reason: "threshold must be positive"}
		}
		sev, err := parseSeverity(SetCrutchWords, word, e.Severity, def)
		if err != nil {
			return nil, err
		}
		rs.Words = append(rs.Words, CrutchWord{Word: word, Threshold: *e.Threshold, Severity: sev})
	}
	for i, b := range f.Benchmarks {
		field := fmt.Sprintf("benchmarks[%d]", i)
		switch {
		case strings.TrimSpace(b.Title) == "":
			return nil, &model.ConfigError{RuleSet: SetCrutchWords, Field: field, Reason: "title is empty"}
		case strings.TrimSpace(b.Word) == "":
			return nil, &model.ConfigError{RuleSet: SetCrutchWords, Field: field, Reason: "word is empty"}
		case b.Words <= 0:
			return nil, &model.ConfigError{RuleSet: SetCrutchWords, Field: field, Reason: "words must be positive"}
		case b.Count < 0:
			return nil, &model.ConfigError{RuleSet: SetCrutchWords, Field: field, Reason: "count must not be negative"}
		}
		rs.Benchmarks = append(rs.Benchmarks, Benchmark{
			Title: strings.TrimSpace(b.Title),
			Word:  strings.TrimSpace(b.Word),
			Words: b.Words,
			Count: b.Count,
		})
	}
	return rs, nil
}

func compilePhrases(f *File, norm *textnorm.Normalizer) (*PhraseRules, error) {
	sec := f.Phrases
	sev, err := parseSeverity(SetPhrases, "severity", sec.Severity, DefaultPhraseSeverity)
	if err != nil {
		return nil, err
	}
	rs := &PhraseRules{MinHits: 1, Severity: sev}
	if sec.MinHits != nil {
		if *sec.MinHits <= 0 {
			return nil, &model.ConfigError{RuleSet: SetPhrases, Field: "min_hits", Reason: "must be positive"}
		}
		rs.MinHits = *sec.MinHits
	}
	phrases := make([]string, 0, len(sec.List))
	for _, p := range sec.List {
		phrases = append(phrases, strings.TrimSpace(p))
	}
	if sec.File != "" {
		words, err := wordlist.LoadWords(f.resolve(sec.File))
		if err != nil {
			return nil, &model.ConfigError{RuleSet: SetPhrases, Field: "file", Reason: err.Error()}
		}
		phrases = append(phrases, words...)
	}
	// Duplicates are dropped by normalized form, keeping the first spelling.
	seen := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		key := norm.Phrase(p)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rs.Phrases = append(rs.Phrases, p)
	}
	if len(rs.Phrases) == 0 {
		return nil, &model.ConfigError{RuleSet: SetPhrases, Reason: "no phrases configured"}
	}
	return rs, nil
}

func compileContext(sec *ContextSection) (snippet.Options, error) {
	opts := snippet.DefaultOptions()
	if sec.Chars != nil {
		if *sec.Chars < 0 {
			return opts, &model.ConfigError{RuleSet: SetContext, Field: "chars", Reason: "must not be negative"}
		}
		opts.Chars = *sec.Chars
	}
	if sec.Tokens != nil {
		if *sec.Tokens < 0 {
			return opts, &model.ConfigError{RuleSet: SetContext, Field: "tokens", Reason: "must not be negative"}
		}
		opts.Tokens = *sec.Tokens
	}
	return opts, nil
}

func parseSeverity(ruleSet, field, text string, def model.Severity) (model.Severity, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return def, nil
	}
	sev := model.SeverityFromName(strings.ToLower(text))
	if sev < 0 {
		return def, &model.ConfigError{
			RuleSet: ruleSet,
			Field:   field,
			Reason:  fmt.Sprintf("unknown severity %q (want hard or advisory)", text),
		}
	}
	return sev, nil
}

func nonEmpty(items []string) []string {
	out := items[:0]
	for _, s := range items {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
