package engine

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/prosestat/internal/model"
	"github.com/verte-zerg/prosestat/internal/rules"
	"github.com/verte-zerg/prosestat/internal/textnorm"
)

const testRules = `
[overuse]
lemmas = ["still", "smile"]
min_total = 3
min_chapter = 2
min_share = 0.5

[[families.list]]
preferred = "backup"
variants = ["back up"]

[[crutch_words.list]]
word = "like"
threshold = 80

[[crutch_words.list]]
word = "very"
threshold = 30
severity = "hard"

[phrases]
list = ["let out a breath"]
`

func chapter(id, text string) model.Chapter {
	fields := strings.Fields(text)
	tokens := make([]model.Token, len(fields))
	for i, f := range fields {
		tokens[i] = model.Token{Text: f, Lemma: strings.ToLower(f), Line: i/5 + 1}
	}
	return model.Chapter{ID: id, Tokens: tokens, WordCount: len(tokens)}
}

func testCorpus() model.Corpus {
	return model.Corpus{Chapters: []model.Chapter{
		chapter("chapter_001", "still like still like she let out a breath"),
		chapter("chapter_002", "still very quiet"),
		chapter("chapter_003", "we should back up the files"),
	}}
}

func compiled(t *testing.T, text string) *rules.Compiled {
	t.Helper()
	f, err := rules.Parse([]byte(text), rules.FormatTOML)
	require.NoError(t, err)
	return rules.Compile(f, textnorm.New(0))
}

func TestRun_AllRuleSets(t *testing.T) {
	res, err := Run(context.Background(), testCorpus(), compiled(t, testRules), Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, 3, res.Chapters)
	assert.Equal(t, 18, res.TotalWords)

	require.NotNil(t, res.Frequencies)
	assert.Equal(t, 3, res.Frequencies.Lemmas["still"].Total)
	require.Len(t, res.Overuse, 1)
	assert.Equal(t, "still", res.Overuse[0].Lemma)
	assert.Equal(t, "chapter_001", res.Overuse[0].TopChapter)

	require.Len(t, res.Families, 1)
	assert.Equal(t, 1, res.Families[0].Variants[0].Count)
	assert.Equal(t, model.SeverityHard, res.Families[0].Severity)

	require.Len(t, res.Rates, 2)
	assert.Equal(t, "like", res.Rates[0].Word)
	assert.True(t, res.Rates[0].Exceeds)

	require.Len(t, res.Phrases, 1)
	assert.Equal(t, 1, res.Phrases[0].Count)

	// still overuse, backup family, like and very rates, one phrase
	assert.Equal(t, 5, res.Flagged())
}

func TestRun_FailedRuleSetIsSkipped(t *testing.T) {
	text := strings.Replace(testRules, `variants = ["back up"]
`, `variants = ["back up"]

[[families.list]]
preferred = "back-up"
variants = ["Back Up"]
`, 1)
	res, err := Run(context.Background(), testCorpus(), compiled(t, text), Options{})
	require.NoError(t, err)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "families", res.Skipped[0].RuleSet)
	assert.True(t, strings.HasPrefix(res.Skipped[0].Reason, "skipped due to configuration error: "))
	assert.Empty(t, res.Families)
	assert.NotEmpty(t, res.Overuse)
	assert.NotEmpty(t, res.Rates)
}

func TestRun_ZeroWordsSkipsRatesOnly(t *testing.T) {
	c := model.Corpus{Chapters: []model.Chapter{{ID: "empty"}}}
	res, err := Run(context.Background(), c, compiled(t, testRules), Options{})
	require.NoError(t, err)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "crutch_words", res.Skipped[0].RuleSet)
	assert.Contains(t, res.Skipped[0].Reason, "invalid input")
	assert.Nil(t, res.Rates)
	require.Len(t, res.Families, 1)
	assert.Equal(t, 0, res.Families[0].PreferredCount)
}

func TestRun_InvalidCorpus(t *testing.T) {
	c := model.Corpus{Chapters: []model.Chapter{{ID: "a"}, {ID: "a"}}}
	_, err := Run(context.Background(), c, compiled(t, testRules), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testCorpus(), compiled(t, testRules), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_NoRules(t *testing.T) {
	res, err := Run(context.Background(), testCorpus(), nil, Options{})
	require.NoError(t, err)
	assert.Nil(t, res.Frequencies)
	assert.Empty(t, res.Skipped)
}

func TestRun_Logs(t *testing.T) {
	var buf bytes.Buffer
	_, err := Run(context.Background(), testCorpus(), compiled(t, testRules), Options{Logger: log.New(&buf, "", 0)})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "overuse: done")
	assert.Contains(t, buf.String(), "phrases: done")
}

func TestFilter(t *testing.T) {
	res, err := Run(context.Background(), testCorpus(), compiled(t, testRules), Options{})
	require.NoError(t, err)

	hard := res.Filter(model.SeverityHard)
	assert.Empty(t, hard.Overuse)
	assert.Len(t, hard.Families, 1)
	require.Len(t, hard.Rates, 1)
	assert.Equal(t, "very", hard.Rates[0].Word)
	assert.Empty(t, hard.Phrases)
	assert.Equal(t, res.Frequencies, hard.Frequencies)

	advisory := res.Filter(model.SeverityAdvisory)
	assert.Len(t, advisory.Overuse, 1)
	assert.Empty(t, advisory.Families)
	require.Len(t, advisory.Rates, 1)
	assert.Equal(t, "like", advisory.Rates[0].Word)

	assert.Len(t, res.Rates, 2, "filter does not modify the receiver")
}
