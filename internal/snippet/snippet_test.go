package snippet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/prosestat/internal/model"
)

func TestFromRunes_TrimsToWords(t *testing.T) {
	text := []rune("The quick brown fox jumps over the lazy dog")
	// "fox" is runes 16..19
	got := FromRunes(text, 16, 19, 6)
	assert.Equal(t, "brown fox jumps", got)
}

func TestFromRunes_FlushEdges(t *testing.T) {
	text := []rune("back up now")
	assert.Equal(t, "back up now", FromRunes(text, 0, 7, 60))
}

func TestFromRunes_CollapsesNewlines(t *testing.T) {
	text := []rune("first line\nsecond  line")
	assert.Equal(t, "first line second line", FromRunes(text, 6, 10, 40))
}

func TestFromRunes_NeverCutsMatch(t *testing.T) {
	text := []rune("abcdefghij")
	assert.Equal(t, "de", FromRunes(text, 3, 5, 1))
}

func TestFromTokens_Window(t *testing.T) {
	tokens := []model.Token{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}, {Text: "e"}}
	assert.Equal(t, "b c d", FromTokens(tokens, 2, 2, 1))
	assert.Equal(t, "a b c d e", FromTokens(tokens, 1, 3, 8))
	assert.Equal(t, "", FromTokens(tokens, 4, 5, 1))
}

func TestChapter_PrefersRawText(t *testing.T) {
	ch := model.Chapter{
		ID:   "chapter_003",
		Text: "We should back up the files.",
		Tokens: []model.Token{
			{Text: "We", Offset: 0}, {Text: "should", Offset: 3}, {Text: "back", Offset: 10},
			{Text: "up", Offset: 15}, {Text: "the", Offset: 18}, {Text: "files", Offset: 22},
			{Text: ".", Offset: 27},
		},
	}
	runes := []rune(ch.Text)
	assert.Equal(t, "We should back up the files.", Chapter(ch, runes, 2, 3, DefaultOptions()))
}

func TestChapter_FallsBackToTokens(t *testing.T) {
	ch := model.Chapter{
		ID:     "c",
		Tokens: []model.Token{{Text: "every", Offset: 500}, {Text: "day", Offset: 506}},
	}
	assert.Equal(t, "every day", Chapter(ch, []rune("short"), 0, 1, DefaultOptions()))
	assert.Equal(t, "every day", Chapter(ch, nil, 0, 1, DefaultOptions()))
}
