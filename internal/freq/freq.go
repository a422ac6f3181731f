// Package freq counts focus lemmas per chapter.
package freq

import (
	"context"

	"github.com/verte-zerg/prosestat/internal/model"
)

// Aggregate makes one pass over every token of the corpus and counts the
// lemmas listed in focus, per chapter and in total. Every focus lemma gets an
// entry, even when it never occurs. Lemmas are compared exactly.
func Aggregate(ctx context.Context, corpus model.Corpus, focus []string) (model.LemmaFrequencyTable, error) {
	table := model.LemmaFrequencyTable{
		Chapters: corpus.ChapterIDs(),
		Lemmas:   make(map[string]model.LemmaCounts, len(focus)),
	}
	for _, lemma := range focus {
		if lemma == "" {
			continue
		}
		table.Lemmas[lemma] = model.LemmaCounts{ByChapter: map[string]int{}}
	}
	if len(table.Lemmas) == 0 {
		return table, nil
	}

	for _, ch := range corpus.Chapters {
		if err := ctx.Err(); err != nil {
			return model.LemmaFrequencyTable{}, err
		}
		for _, tok := range ch.Tokens {
			counts, ok := table.Lemmas[tok.Lemma]
			if !ok {
				continue
			}
			// ByChapter is shared with the map entry; only Total needs a store.
			counts.ByChapter[ch.ID]++
			counts.Total++
			table.Lemmas[tok.Lemma] = counts
		}
	}
	return table, nil
}

// Count returns the count of lemma in chapter. Missing entries are zero.
func Count(table model.LemmaFrequencyTable, lemma, chapter string) int {
	return table.Lemmas[lemma].ByChapter[chapter]
}
