package rate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/prosestat/internal/model"
	"github.com/verte-zerg/prosestat/internal/rules"
	"github.com/verte-zerg/prosestat/internal/textnorm"
)

func words(id string, text string, wordCount int) model.Chapter {
	fields := strings.Fields(text)
	tokens := make([]model.Token, len(fields))
	for i, f := range fields {
		tokens[i] = model.Token{Text: f, Lemma: strings.ToLower(f), Line: 1}
	}
	return model.Chapter{ID: id, Tokens: tokens, WordCount: wordCount}
}

func TestEvaluate(t *testing.T) {
	f, err := Evaluate("like", 45, 7763, 80)
	require.NoError(t, err)
	assert.InDelta(t, 450000.0/7763.0, f.Rate, 1e-6)
	assert.Equal(t, "58.0", fmt.Sprintf("%.1f", f.Rate))
	assert.False(t, f.Exceeds)
	assert.Equal(t, 45, f.Count)
	assert.Equal(t, 7763, f.TotalWords)
}

func TestEvaluate_StrictThreshold(t *testing.T) {
	f, err := Evaluate("just", 6, 1000, 60)
	require.NoError(t, err)
	assert.Equal(t, 60.0, f.Rate)
	assert.False(t, f.Exceeds, "equal rate does not exceed")

	f, err = Evaluate("just", 7, 1000, 60)
	require.NoError(t, err)
	assert.True(t, f.Exceeds)
}

func TestEvaluate_ZeroWords(t *testing.T) {
	_, err := Evaluate("like", 3, 0, 80)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestScan(t *testing.T) {
	c := model.Corpus{Chapters: []model.Chapter{
		words("c1", "Like I said, it was like rain", 500),
		words("c2", "She liked it. Really.", 500),
	}}
	watch := []rules.CrutchWord{
		{Word: "really", Threshold: 5, Severity: model.SeverityHard},
		{Word: "like", Threshold: 80, Severity: model.SeverityAdvisory},
		{Word: "suddenly", Threshold: 20, Severity: model.SeverityAdvisory},
	}
	bench := []rules.Benchmark{
		{Title: "Long Call (Cleeves)", Word: "like", Words: 105816, Count: 262},
		{Title: "Other", Word: "just", Words: 1000, Count: 1},
	}
	findings, err := Scan(context.Background(), c, watch, bench, textnorm.New(0))
	require.NoError(t, err)
	require.Len(t, findings, 3)

	like := findings[0]
	assert.Equal(t, "like", like.Word)
	assert.Equal(t, 2, like.Count, "liked is a different written form")
	assert.Equal(t, 1000, like.TotalWords)
	assert.InDelta(t, 20.0, like.Rate, 1e-9)
	assert.False(t, like.Exceeds)
	assert.Equal(t, model.SeverityAdvisory, like.Severity)
	require.Len(t, like.Benchmarks, 1)
	assert.InDelta(t, 24.76, like.Benchmarks[0].Rate, 0.01)
	require.Len(t, like.Chapters, 2)
	assert.Equal(t, model.ChapterRate{ChapterID: "c1", Count: 2, Words: 500, Rate: 40}, like.Chapters[0])

	really := findings[1]
	assert.Equal(t, "really", really.Word)
	assert.Equal(t, 0, really.Count, "Really. keeps its punctuation")

	suddenly := findings[2]
	assert.Equal(t, 0, suddenly.Count)
	assert.Equal(t, 0.0, suddenly.Rate)
	assert.Empty(t, suddenly.Benchmarks)
}

func TestScan_BenchmarksNeverFlag(t *testing.T) {
	c := model.Corpus{Chapters: []model.Chapter{words("c1", "like", 10000)}}
	watch := []rules.CrutchWord{{Word: "like", Threshold: 80}}
	high := []rules.Benchmark{{Title: "Dense", Word: "like", Words: 100, Count: 90}}

	without, err := Scan(context.Background(), c, watch, nil, nil)
	require.NoError(t, err)
	with, err := Scan(context.Background(), c, watch, high, nil)
	require.NoError(t, err)
	assert.Equal(t, without[0].Exceeds, with[0].Exceeds)
	assert.False(t, with[0].Exceeds)
}

func TestScan_EmptyCorpus(t *testing.T) {
	_, err := Scan(context.Background(), model.Corpus{}, []rules.CrutchWord{{Word: "like", Threshold: 1}}, nil, nil)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}
