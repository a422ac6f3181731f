// Package corpus loads the external lemmatizer's token streams into a
// model.Corpus.
//
// Two layouts are accepted: a single JSON document holding every chapter, or
// a directory of per-chapter JSON files read in file-name order. Token keys
// follow the spaCy export shape (text, lemma, line, idx). Other keys, such as
// pos or dep, are ignored in both layouts.
package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/verte-zerg/prosestat/internal/model"
	"github.com/verte-zerg/prosestat/internal/wordlist"
)

type fileChapter struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	WordCount *int          `json:"word_count"`
	Tokens    []model.Token `json:"tokens"`
}

type fileCorpus struct {
	Chapters []fileChapter `json:"chapters"`
}

// Load reads a corpus from a JSON document or a directory of chapter files.
// A path of "-" reads a document from stdin.
func Load(path string) (model.Corpus, error) {
	if path == "" {
		return model.Corpus{}, fmt.Errorf("corpus path is empty")
	}
	if path == "-" {
		return Decode(os.Stdin)
	}
	info, err := os.Stat(path)
	if err != nil {
		return model.Corpus{}, fmt.Errorf("failed to stat corpus: %w", err)
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	file, err := os.Open(path)
	if err != nil {
		return model.Corpus{}, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	return Decode(file)
}

// Decode reads a whole-corpus JSON document. The document must carry a
// chapters array.
func Decode(r io.Reader) (model.Corpus, error) {
	var doc fileCorpus
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return model.Corpus{}, fmt.Errorf("failed to decode corpus: %w", err)
	}
	if doc.Chapters == nil {
		return model.Corpus{}, &model.InputError{Reason: "corpus document has no chapters array"}
	}
	return build(doc.Chapters)
}

// LoadDir reads every *.json file in dir as one chapter, in sorted file-name
// order. A chapter without an id takes the file name without extension.
func LoadDir(dir string) (model.Corpus, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return model.Corpus{}, fmt.Errorf("failed to list chapters: %w", err)
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return model.Corpus{}, &model.InputError{Reason: fmt.Sprintf("no chapter files in %s", dir)}
	}
	chapters := make([]fileChapter, 0, len(matches))
	for _, path := range matches {
		ch, err := readChapterFile(path)
		if err != nil {
			return model.Corpus{}, err
		}
		if ch.ID == "" {
			ch.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		chapters = append(chapters, ch)
	}
	return build(chapters)
}

func readChapterFile(path string) (fileChapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileChapter{}, fmt.Errorf("failed to read chapter: %w", err)
	}
	var ch fileChapter
	if err := json.Unmarshal(data, &ch); err != nil {
		return fileChapter{}, fmt.Errorf("failed to decode chapter %s: %w", filepath.Base(path), err)
	}
	return ch, nil
}

func build(chapters []fileChapter) (model.Corpus, error) {
	out := model.Corpus{Chapters: make([]model.Chapter, 0, len(chapters))}
	for _, fc := range chapters {
		tokens := make([]model.Token, len(fc.Tokens))
		words := 0
		for i, tok := range fc.Tokens {
			tok.Lemma = strings.ToLower(tok.Lemma)
			tokens[i] = tok
			if wordlist.IsWord(tok.Text) {
				words++
			}
		}
		if fc.WordCount != nil {
			words = *fc.WordCount
		}
		out.Chapters = append(out.Chapters, model.Chapter{
			ID:        strings.TrimSpace(fc.ID),
			Tokens:    tokens,
			WordCount: words,
			Text:      fc.Text,
		})
	}
	if err := out.Validate(); err != nil {
		return model.Corpus{}, err
	}
	return out, nil
}
