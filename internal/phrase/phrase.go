// Package phrase reports configured stock phrases with their contexts.
package phrase

import (
	"context"
	"sort"

	"github.com/verte-zerg/prosestat/internal/match"
	"github.com/verte-zerg/prosestat/internal/model"
	"github.com/verte-zerg/prosestat/internal/rules"
	"github.com/verte-zerg/prosestat/internal/snippet"
	"github.com/verte-zerg/prosestat/internal/textnorm"
)

// Scan finds every configured phrase in the corpus. Phrases used fewer than
// rs.MinHits times are left out. Findings are ordered by count, highest
// first, then by phrase.
func Scan(ctx context.Context, corpus model.Corpus, rs rules.PhraseRules, norm *textnorm.Normalizer, opts snippet.Options) ([]model.PhraseFinding, error) {
	if len(rs.Phrases) == 0 {
		return nil, nil
	}
	patterns := make([]string, len(rs.Phrases))
	for i, p := range rs.Phrases {
		patterns[i] = norm.Phrase(p)
	}
	matcher := match.New(patterns)

	occurrences := make([][]model.PhraseOccurrence, len(rs.Phrases))
	for _, ch := range corpus.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hits := matcher.ScanChapter(ch, norm)
		if len(hits) == 0 {
			continue
		}
		var runes []rune
		if ch.Text != "" {
			runes = []rune(ch.Text)
		}
		for _, hit := range hits {
			occurrences[hit.Pattern] = append(occurrences[hit.Pattern], model.PhraseOccurrence{
				Text:      match.Surface(ch.Tokens, hit.First, hit.Last),
				ChapterID: ch.ID,
				Line:      ch.Tokens[hit.First].Line,
				Snippet:   snippet.Chapter(ch, runes, hit.First, hit.Last, opts),
			})
		}
	}

	minHits := rs.MinHits
	if minHits < 1 {
		minHits = 1
	}
	var findings []model.PhraseFinding
	for i, p := range rs.Phrases {
		if len(occurrences[i]) < minHits {
			continue
		}
		findings = append(findings, model.PhraseFinding{
			Phrase:      p,
			Severity:    rs.Severity,
			Count:       len(occurrences[i]),
			Occurrences: occurrences[i],
		})
	}
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Count == findings[j].Count {
			return findings[i].Phrase < findings[j].Phrase
		}
		return findings[i].Count > findings[j].Count
	})
	return findings, nil
}
