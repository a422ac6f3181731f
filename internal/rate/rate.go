// Package rate measures how often watched words are used per 10,000 words.
//
// Counting is done on written token forms, not lemmas: "like" and "liked"
// are separate words unless both are watched.
package rate

import (
	"context"
	"fmt"
	"sort"

	"github.com/verte-zerg/prosestat/internal/match"
	"github.com/verte-zerg/prosestat/internal/model"
	"github.com/verte-zerg/prosestat/internal/rules"
	"github.com/verte-zerg/prosestat/internal/textnorm"
)

// PerWords is the rate denominator.
const PerWords = 10000.0

// Per10k returns count per 10,000 of words. words must be positive.
func Per10k(count, words int) float64 {
	return float64(count) * PerWords / float64(words)
}

// Evaluate computes the rate of one word and compares it to threshold.
// The threshold is exceeded only when the rate is strictly greater.
func Evaluate(word string, count, totalWords int, threshold float64) (model.RateFinding, error) {
	if totalWords <= 0 {
		return model.RateFinding{}, &model.InputError{
			Reason: fmt.Sprintf("rate of %q needs a positive word count, got %d", word, totalWords),
		}
	}
	if count < 0 {
		return model.RateFinding{}, &model.InputError{
			Reason: fmt.Sprintf("rate of %q needs a non-negative count, got %d", word, count),
		}
	}
	r := Per10k(count, totalWords)
	return model.RateFinding{
		Word:       word,
		Count:      count,
		TotalWords: totalWords,
		Rate:       r,
		Threshold:  threshold,
		Exceeds:    r > threshold,
	}, nil
}

// Scan counts every watched word over the corpus and evaluates it against its
// threshold. Benchmarks for the same word are attached as display data.
// Findings are ordered by word.
func Scan(ctx context.Context, corpus model.Corpus, words []rules.CrutchWord, benchmarks []rules.Benchmark, norm *textnorm.Normalizer) ([]model.RateFinding, error) {
	if len(words) == 0 {
		return nil, nil
	}
	totalWords := corpus.TotalWords()
	if totalWords <= 0 {
		return nil, &model.InputError{Reason: "corpus has no words"}
	}

	patterns := make([]string, len(words))
	for i, w := range words {
		patterns[i] = norm.Phrase(w.Word)
	}
	matcher := match.New(patterns)

	totals := make([]int, len(words))
	byChapter := make([][]int, len(words))
	for i := range byChapter {
		byChapter[i] = make([]int, len(corpus.Chapters))
	}
	for ci, ch := range corpus.Chapters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, hit := range matcher.ScanChapter(ch, norm) {
			totals[hit.Pattern]++
			byChapter[hit.Pattern][ci]++
		}
	}

	findings := make([]model.RateFinding, 0, len(words))
	for i, w := range words {
		f, err := Evaluate(w.Word, totals[i], totalWords, w.Threshold)
		if err != nil {
			return nil, err
		}
		f.Severity = w.Severity
		f.Chapters = chapterRates(corpus, byChapter[i])
		f.Benchmarks = benchmarkRates(patterns[i], benchmarks, norm)
		findings = append(findings, f)
	}
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Word < findings[j].Word
	})
	return findings, nil
}

func chapterRates(corpus model.Corpus, counts []int) []model.ChapterRate {
	out := make([]model.ChapterRate, len(corpus.Chapters))
	for i, ch := range corpus.Chapters {
		cr := model.ChapterRate{ChapterID: ch.ID, Count: counts[i], Words: ch.WordCount}
		if ch.WordCount > 0 {
			cr.Rate = Per10k(counts[i], ch.WordCount)
		}
		out[i] = cr
	}
	return out
}

func benchmarkRates(word string, benchmarks []rules.Benchmark, norm *textnorm.Normalizer) []model.BenchmarkRate {
	var out []model.BenchmarkRate
	for _, b := range benchmarks {
		if norm.Phrase(b.Word) != word || b.Words <= 0 {
			continue
		}
		out = append(out, model.BenchmarkRate{
			Title: b.Title,
			Words: b.Words,
			Count: b.Count,
			Rate:  Per10k(b.Count, b.Words),
		})
	}
	return out
}
