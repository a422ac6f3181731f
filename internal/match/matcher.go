// Package match finds configured word sequences in a chapter's token stream.
// It wraps the petar-dambovaliev/aho-corasick library: a chapter's normalized
// token forms are joined into one line and every automaton hit that starts
// and ends on token boundaries becomes a match of N consecutive tokens.
//
// Tokens are joined by a single space unless they touch in the source text.
// Touching tokens are joined directly, so a tokenizer that splits "co-worker"
// into co, -, worker still yields "co-worker" for the automaton.
package match

import (
	"sort"
	"strings"
	"unicode/utf8"

	aho "github.com/petar-dambovaliev/aho-corasick"

	"github.com/verte-zerg/prosestat/internal/model"
	"github.com/verte-zerg/prosestat/internal/textnorm"
)

// Hit is one pattern occurrence within a chapter. First and Last are
// inclusive token indices.
type Hit struct {
	Pattern int
	First   int
	Last    int
}

// Matcher holds a compiled automaton for a fixed set of phrases.
type Matcher struct {
	automaton aho.AhoCorasick
	patterns  []string
	built     bool
}

// New compiles normalized phrases (words joined by single spaces).
// Empty phrases never match.
func New(patterns []string) *Matcher {
	p := make([]string, len(patterns))
	copy(p, patterns)
	m := &Matcher{patterns: p}
	live := make([]string, 0, len(p))
	for _, pat := range p {
		if pat != "" {
			live = append(live, pat)
		}
	}
	if len(live) == 0 {
		return m
	}
	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	// Empty patterns are replaced by a byte sequence that cannot occur in a
	// joined token stream so pattern indices stay aligned with the input.
	compiled := make([]string, len(p))
	for i, pat := range p {
		if pat == "" {
			compiled[i] = "\x00\x00"
			continue
		}
		compiled[i] = pat
	}
	m.automaton = builder.Build(compiled)
	m.built = true
	return m
}

// PatternCount returns the number of patterns in the matcher.
func (m *Matcher) PatternCount() int {
	return len(m.patterns)
}

// Pattern returns the pattern string at the given index.
func (m *Matcher) Pattern(idx int) string {
	if idx < 0 || idx >= len(m.patterns) {
		return ""
	}
	return m.patterns[idx]
}

// Scan returns every pattern occurrence in normalized token forms that are
// separated by spaces in the text, ordered by first token, then last token,
// then pattern index. Overlapping occurrences are all reported.
func (m *Matcher) Scan(forms []string) []Hit {
	return m.scan(forms, nil)
}

// ScanChapter is Scan over one chapter's tokens, joining tokens that touch.
func (m *Matcher) ScanChapter(ch model.Chapter, norm *textnorm.Normalizer) []Hit {
	return m.scan(Forms(ch, norm), Attached(ch.Tokens))
}

func (m *Matcher) scan(forms []string, attached []bool) []Hit {
	if !m.built || len(forms) == 0 {
		return nil
	}
	var b strings.Builder
	starts := make([]int, len(forms))
	ends := make([]int, len(forms))
	for i, f := range forms {
		// Empty forms always get a separator so token offsets stay distinct.
		glued := i < len(attached) && attached[i] && f != "" && forms[i-1] != ""
		if i > 0 && !glued {
			b.WriteByte(' ')
		}
		starts[i] = b.Len()
		b.WriteString(f)
		ends[i] = b.Len()
	}
	content := []byte(b.String())

	var hits []Hit
	iter := m.automaton.IterOverlappingByte(content)
	for next := iter.Next(); next != nil; next = iter.Next() {
		first, ok := boundary(starts, next.Start())
		if !ok {
			continue
		}
		last, ok := boundary(ends, next.End())
		if !ok {
			continue
		}
		hits = append(hits, Hit{Pattern: next.Pattern(), First: first, Last: last})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].First != hits[j].First {
			return hits[i].First < hits[j].First
		}
		if hits[i].Last != hits[j].Last {
			return hits[i].Last < hits[j].Last
		}
		return hits[i].Pattern < hits[j].Pattern
	})
	return hits
}

// boundary finds the token whose offset equals pos.
func boundary(offsets []int, pos int) (int, bool) {
	idx := sort.SearchInts(offsets, pos)
	if idx < len(offsets) && offsets[idx] == pos {
		return idx, true
	}
	return 0, false
}

// Forms normalizes the surface forms of a chapter's tokens.
func Forms(ch model.Chapter, norm *textnorm.Normalizer) []string {
	forms := make([]string, len(ch.Tokens))
	for i, tok := range ch.Tokens {
		forms[i] = norm.Form(tok.Text)
	}
	return forms
}

// Attached reports for each token whether it starts exactly where the
// previous token ends in the source text. The first token is never attached.
func Attached(tokens []model.Token) []bool {
	out := make([]bool, len(tokens))
	for i := 1; i < len(tokens); i++ {
		prev, tok := tokens[i-1], tokens[i]
		if prev.Text == "" || tok.Text == "" || tok.Offset <= 0 {
			continue
		}
		out[i] = prev.Offset+utf8.RuneCountInString(prev.Text) == tok.Offset
	}
	return out
}

// Surface joins the written text of tokens first..last, with a space only
// where the tokens are apart in the source text.
func Surface(tokens []model.Token, first, last int) string {
	if first < 0 || first >= len(tokens) || last < first {
		return ""
	}
	last = min(last, len(tokens)-1)
	attached := Attached(tokens[first : last+1])
	var b strings.Builder
	for i, tok := range tokens[first : last+1] {
		if i > 0 && !attached[i] {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}
