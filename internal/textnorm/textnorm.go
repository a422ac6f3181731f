// Package textnorm implements the surface-form normalization used for
// variant, phrase and crutch-word matching.
//
// A form is normalized by applying Unicode NFC, then Unicode case folding,
// then mapping typographic single quotes (U+2018, U+2019) to an ASCII
// apostrophe. Lemmas are never passed through here.
package textnorm

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

const defaultCacheSize = 8192

var quoteReplacer = strings.NewReplacer("’", "'", "‘", "'")

// Normalizer normalizes surface forms and memoizes the results.
// It is safe for concurrent use.
type Normalizer struct {
	cache *lru.Cache[string, string]
}

// New returns a Normalizer with a memo of the given size.
// A size <= 0 selects the default.
func New(size int) *Normalizer {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		// Only reachable with a non-positive size.
		return &Normalizer{}
	}
	return &Normalizer{cache: cache}
}

// Form normalizes a single surface form.
func (n *Normalizer) Form(s string) string {
	if n == nil || n.cache == nil {
		return normalize(s)
	}
	if v, ok := n.cache.Get(s); ok {
		return v
	}
	v := normalize(s)
	n.cache.Add(s, v)
	return v
}

// Words splits a configured phrase on whitespace and normalizes each word.
func (n *Normalizer) Words(phrase string) []string {
	fields := strings.Fields(phrase)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = n.Form(f)
	}
	return out
}

// Phrase returns the normalized words of a phrase joined by single spaces.
func (n *Normalizer) Phrase(phrase string) string {
	return strings.Join(n.Words(phrase), " ")
}

func normalize(s string) string {
	s = norm.NFC.String(s)
	// cases.Caser keeps state between calls, so each call gets its own.
	s = cases.Fold().String(s)
	return quoteReplacer.Replace(s)
}
