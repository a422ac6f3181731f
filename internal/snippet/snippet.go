// Package snippet extracts bounded context windows around matches.
package snippet

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/prosestat/internal/model"
)

const (
	DefaultChars  = 60
	DefaultTokens = 8
)

// Options sizes the context window on each side of a match.
type Options struct {
	Chars  int
	Tokens int
}

// DefaultOptions returns the standard window sizes.
func DefaultOptions() Options {
	return Options{Chars: DefaultChars, Tokens: DefaultTokens}
}

// Chapter returns context for tokens first..last of ch. When the chapter
// carries raw text (passed pre-split as runes) and the token offsets fall
// inside it, a character window is used; otherwise a token window.
func Chapter(ch model.Chapter, runes []rune, first, last int, opts Options) string {
	if first < 0 || last < first || last >= len(ch.Tokens) {
		return ""
	}
	if len(runes) > 0 {
		start := ch.Tokens[first].Offset
		end := ch.Tokens[last].Offset + utf8.RuneCountInString(ch.Tokens[last].Text)
		if start >= 0 && start <= end && end <= len(runes) {
			return FromRunes(runes, start, end, opts.Chars)
		}
	}
	return FromTokens(ch.Tokens, first, last, opts.Tokens)
}

// FromRunes returns text[start:end] widened by radius runes on each side,
// trimmed back to whole words and with whitespace collapsed.
func FromRunes(text []rune, start, end, radius int) string {
	if start < 0 {
		start = 0
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return ""
	}
	if radius < 0 {
		radius = 0
	}
	lo := start - radius
	if lo < 0 {
		lo = 0
	}
	hi := end + radius
	if hi > len(text) {
		hi = len(text)
	}

	// chop the partial word at each cut edge, but never into the match
	if lo > 0 && !unicode.IsSpace(text[lo-1]) {
		for lo < start && !unicode.IsSpace(text[lo]) {
			lo++
		}
	}
	if hi < len(text) && !unicode.IsSpace(text[hi]) {
		for hi > end && !unicode.IsSpace(text[hi-1]) {
			hi--
		}
	}
	return collapse(string(text[lo:hi]))
}

// FromTokens joins the written text of tokens first..last widened by radius
// tokens on each side.
func FromTokens(tokens []model.Token, first, last, radius int) string {
	if first < 0 || last < first || last >= len(tokens) {
		return ""
	}
	if radius < 0 {
		radius = 0
	}
	lo := first - radius
	if lo < 0 {
		lo = 0
	}
	hi := last + radius + 1
	if hi > len(tokens) {
		hi = len(tokens)
	}
	parts := make([]string, 0, hi-lo)
	for _, tok := range tokens[lo:hi] {
		parts = append(parts, tok.Text)
	}
	return collapse(strings.Join(parts, " "))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
