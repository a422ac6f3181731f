// Package rules loads rule files and compiles them into the immutable
// configuration the analyzers consume.
//
// A rules file holds up to four independent rule sets (overuse, families,
// crutch_words, phrases) plus context window sizes. Each rule set compiles on
// its own: a broken set is recorded as a failure and the others stay usable.
package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/prosestat/internal/model"
)

// Format is a rules file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// File mirrors a rules file as written.
type File struct {
	FocusLemmasFile string           `toml:"focus_lemmas_file" yaml:"focus_lemmas_file"`
	FamiliesFile    string           `toml:"families_file" yaml:"families_file"`
	Overuse         *OveruseSection  `toml:"overuse" yaml:"overuse"`
	Families        *FamiliesSection `toml:"families" yaml:"families"`
	CrutchWords     *CrutchSection   `toml:"crutch_words" yaml:"crutch_words"`
	Benchmarks      []BenchmarkEntry `toml:"benchmarks" yaml:"benchmarks"`
	Phrases         *PhrasesSection  `toml:"phrases" yaml:"phrases"`
	Context         *ContextSection  `toml:"context" yaml:"context"`

	// baseDir anchors relative list file paths.
	baseDir string
}

// OveruseSection configures the overuse detector.
type OveruseSection struct {
	Lemmas     []string `toml:"lemmas" yaml:"lemmas"`
	MinTotal   *int     `toml:"min_total" yaml:"min_total"`
	MinChapter *int     `toml:"min_chapter" yaml:"min_chapter"`
	MinShare   *float64 `toml:"min_share" yaml:"min_share"`
	Severity   string   `toml:"severity" yaml:"severity"`
}

// FamiliesSection configures spelling families.
type FamiliesSection struct {
	Severity string        `toml:"severity" yaml:"severity"`
	List     []FamilyEntry `toml:"list" yaml:"list"`
}

// FamilyEntry is one preferred form and its variants.
type FamilyEntry struct {
	Preferred string   `toml:"preferred" yaml:"preferred"`
	Variants  []string `toml:"variants" yaml:"variants"`
	Severity  string   `toml:"severity" yaml:"severity"`
}

// CrutchSection configures watched words and their rate thresholds.
type CrutchSection struct {
	Severity string        `toml:"severity" yaml:"severity"`
	List     []CrutchEntry `toml:"list" yaml:"list"`
}

// CrutchEntry is one watched word. Threshold is uses per 10,000 words.
type CrutchEntry struct {
	Word      string   `toml:"word" yaml:"word"`
	Threshold *float64 `toml:"threshold" yaml:"threshold"`
	Severity  string   `toml:"severity" yaml:"severity"`
}

// BenchmarkEntry is reference usage of a word in a published book.
type BenchmarkEntry struct {
	Title string `toml:"title" yaml:"title"`
	Word  string `toml:"word" yaml:"word"`
	Words int    `toml:"words" yaml:"words"`
	Count int    `toml:"count" yaml:"count"`
}

// PhrasesSection configures stock phrase detection.
type PhrasesSection struct {
	File     string   `toml:"file" yaml:"file"`
	List     []string `toml:"list" yaml:"list"`
	MinHits  *int     `toml:"min_hits" yaml:"min_hits"`
	Severity string   `toml:"severity" yaml:"severity"`
}

// ContextSection sizes snippet windows.
type ContextSection struct {
	Chars  *int `toml:"chars" yaml:"chars"`
	Tokens *int `toml:"tokens" yaml:"tokens"`
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", &model.ConfigError{Reason: fmt.Sprintf("unsupported rules file extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))}
	}
}

// Load reads a rules file. Relative list file paths inside it resolve
// against the file's directory.
func Load(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("rules path is empty")
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	f.baseDir = filepath.Dir(path)
	return f, nil
}

// Parse decodes rules text. Unknown keys are configuration errors.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		meta, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, &model.ConfigError{Reason: fmt.Sprintf("failed to decode rules: %v", err)}
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, &model.ConfigError{Field: keys[0], Reason: fmt.Sprintf("unknown key %q", keys[0])}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, &model.ConfigError{Reason: fmt.Sprintf("failed to decode rules: %v", err)}
		}
	default:
		return nil, &model.ConfigError{Reason: fmt.Sprintf("unknown rules format %q", format)}
	}
	return &f, nil
}

func (f *File) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || f.baseDir == "" {
		return path
	}
	return filepath.Join(f.baseDir, path)
}
