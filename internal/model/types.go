// Package model defines shared data structures.
package model

import "fmt"

// Token is one word occurrence produced by the external lemmatizer.
type Token struct {
	Text   string `json:"text"`
	Lemma  string `json:"lemma"`
	Line   int    `json:"line"`
	Offset int    `json:"idx"`
}

// Chapter is an ordered unit of the manuscript.
type Chapter struct {
	ID        string
	Tokens    []Token
	WordCount int
	// Text is the raw chapter text when the loader supplied it. Token
	// offsets index into it by rune.
	Text string
}

// Corpus is the whole manuscript in book order.
type Corpus struct {
	Chapters []Chapter
}

// TotalWords sums the chapter word counts.
func (c Corpus) TotalWords() int {
	total := 0
	for _, ch := range c.Chapters {
		total += ch.WordCount
	}
	return total
}

// ChapterIDs returns chapter identifiers in book order.
func (c Corpus) ChapterIDs() []string {
	ids := make([]string, len(c.Chapters))
	for i, ch := range c.Chapters {
		ids[i] = ch.ID
	}
	return ids
}

// Validate checks the corpus invariants.
func (c Corpus) Validate() error {
	seen := make(map[string]struct{}, len(c.Chapters))
	for i, ch := range c.Chapters {
		if ch.ID == "" {
			return &InputError{Reason: fmt.Sprintf("chapter %d has an empty id", i+1)}
		}
		if _, ok := seen[ch.ID]; ok {
			return &InputError{Reason: fmt.Sprintf("duplicate chapter id %q", ch.ID)}
		}
		if ch.WordCount < 0 {
			return &InputError{Reason: fmt.Sprintf("chapter %q has a negative word count", ch.ID)}
		}
		seen[ch.ID] = struct{}{}
	}
	return nil
}

// LemmaCounts holds per-chapter counts for one lemma.
type LemmaCounts struct {
	Total     int            `json:"total"`
	ByChapter map[string]int `json:"by_chapter"`
}

// LemmaFrequencyTable maps focus lemmas to their chapter distribution.
type LemmaFrequencyTable struct {
	// Chapters lists every chapter id in book order.
	Chapters []string               `json:"chapters"`
	Lemmas   map[string]LemmaCounts `json:"lemmas"`
}

// LemmaTotal is one row of the whole-book totals listing.
type LemmaTotal struct {
	Lemma string `json:"lemma"`
	Total int    `json:"total"`
}

// ChapterCount is a count attributed to one chapter.
type ChapterCount struct {
	ChapterID string `json:"chapter"`
	Count     int    `json:"count"`
}

// OveruseFinding flags a lemma concentrated in one chapter.
type OveruseFinding struct {
	Lemma        string         `json:"lemma"`
	Total        int            `json:"total"`
	TopChapter   string         `json:"top_chapter"`
	TopCount     int            `json:"top_count"`
	Share        float64        `json:"share"`
	Severity     Severity       `json:"severity"`
	Distribution []ChapterCount `json:"distribution"`
}

// StyleFamily is a preferred form and its registered variants.
type StyleFamily struct {
	ID        string   `json:"id"`
	Preferred string   `json:"preferred"`
	Variants  []string `json:"variants"`
	Severity  Severity `json:"severity"`
}

// VariantOccurrence is one matched instance of a variant form.
type VariantOccurrence struct {
	FamilyID  string `json:"family"`
	Form      string `json:"form"`
	Text      string `json:"text"`
	ChapterID string `json:"chapter"`
	Line      int    `json:"line"`
	Snippet   string `json:"snippet"`
}

// VariantGroup groups the occurrences of one variant form.
type VariantGroup struct {
	Form        string              `json:"form"`
	Count       int                 `json:"count"`
	Occurrences []VariantOccurrence `json:"occurrences"`
}

// FamilyReport summarizes one style family over the corpus.
type FamilyReport struct {
	FamilyID       string         `json:"family"`
	Preferred      string         `json:"preferred"`
	Severity       Severity       `json:"severity"`
	PreferredCount int            `json:"preferred_count"`
	Variants       []VariantGroup `json:"variants"`
}

// HasVariants reports whether any non-preferred form was used.
func (r FamilyReport) HasVariants() bool {
	for _, v := range r.Variants {
		if v.Count > 0 {
			return true
		}
	}
	return false
}

// VariantHits sums variant usage.
func (r FamilyReport) VariantHits() int {
	total := 0
	for _, v := range r.Variants {
		total += v.Count
	}
	return total
}

// BenchmarkRate is reference data shown next to a rate finding.
type BenchmarkRate struct {
	Title string  `json:"title"`
	Words int     `json:"words"`
	Count int     `json:"count"`
	Rate  float64 `json:"rate"`
}

// ChapterRate is a per-chapter rate for a watched word.
type ChapterRate struct {
	ChapterID string  `json:"chapter"`
	Count     int     `json:"count"`
	Words     int     `json:"words"`
	Rate      float64 `json:"rate"`
}

// RateFinding is the per-10k-words usage of a watched word.
type RateFinding struct {
	Word       string          `json:"word"`
	Count      int             `json:"count"`
	TotalWords int             `json:"total_words"`
	Rate       float64         `json:"rate"`
	Threshold  float64         `json:"threshold"`
	Exceeds    bool            `json:"exceeds_threshold"`
	Severity   Severity        `json:"severity"`
	Benchmarks []BenchmarkRate `json:"benchmarks,omitempty"`
	Chapters   []ChapterRate   `json:"chapters,omitempty"`
}

// PhraseOccurrence is one matched stock phrase.
type PhraseOccurrence struct {
	Text      string `json:"text"`
	ChapterID string `json:"chapter"`
	Line      int    `json:"line"`
	Snippet   string `json:"snippet"`
}

// PhraseFinding reports a configured phrase found in the corpus.
type PhraseFinding struct {
	Phrase      string             `json:"phrase"`
	Severity    Severity           `json:"severity"`
	Count       int                `json:"count"`
	Occurrences []PhraseOccurrence `json:"occurrences"`
}
