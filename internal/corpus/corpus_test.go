package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/prosestat/internal/model"
)

const sampleDoc = `{
  "chapters": [
    {"id": "chapter_001", "text": "She Smiled.", "tokens": [
      {"text": "She", "lemma": "she", "line": 1, "idx": 0},
      {"text": "Smiled", "lemma": "Smile", "line": 1, "idx": 4},
      {"text": ".", "lemma": ".", "line": 1, "idx": 10}
    ]},
    {"id": "chapter_002", "word_count": 250, "tokens": [
      {"text": "still", "lemma": "still", "line": 3, "idx": 12}
    ]}
  ]
}`

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	require.Len(t, c.Chapters, 2)

	first := c.Chapters[0]
	assert.Equal(t, "chapter_001", first.ID)
	assert.Equal(t, 2, first.WordCount, "punctuation does not count as a word")
	assert.Equal(t, "smile", first.Tokens[1].Lemma)
	assert.Equal(t, "Smiled", first.Tokens[1].Text)
	assert.Equal(t, 4, first.Tokens[1].Offset)
	assert.Equal(t, "She Smiled.", first.Text)

	assert.Equal(t, 250, c.Chapters[1].WordCount, "explicit word count wins")
	assert.Equal(t, 252, c.TotalWords())
}

func TestDecode_DuplicateChapter(t *testing.T) {
	doc := `{"chapters":[{"id":"a","tokens":[]},{"id":"a","tokens":[]}]}`
	_, err := Decode(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestDecode_MissingChapters(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"chapterz": []}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

const spacyToken = `{"text":"She","lemma":"she","line":1,"idx":0,"pos":"PRON","dep":"nsubj","is_stop":true}`

func TestDecode_ExtraKeysIgnored(t *testing.T) {
	doc := `{"model":"en_core_web_sm","chapters":[{"id":"a","lang":"en","tokens":[` + spacyToken + `]}]}`
	c, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, c.Chapters, 1)
	assert.Equal(t, model.Token{Text: "She", Lemma: "she", Line: 1, Offset: 0}, c.Chapters[0].Tokens[0])
}

func TestLoadDir_ExtraKeysIgnored(t *testing.T) {
	dir := t.TempDir()
	body := `{"id":"a","lang":"en","tokens":[` + spacyToken + `]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chapter_001.json"), []byte(body), 0o644))
	c, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, c.Chapters, 1)
	assert.Equal(t, "she", c.Chapters[0].Tokens[0].Lemma)
}

func TestLoadDir_SortedAndNamedByFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("chapter_002.json", `{"tokens":[{"text":"b","lemma":"b","line":1,"idx":0}]}`)
	write("chapter_001.json", `{"tokens":[{"text":"a","lemma":"a","line":1,"idx":0}]}`)
	write("notes.txt", `ignored`)

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"chapter_001", "chapter_002"}, c.ChapterIDs())
}

func TestLoadDir_Empty(t *testing.T) {
	_, err := LoadDir(t.TempDir())
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Chapters, 2)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
