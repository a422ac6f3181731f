package wordlist

import "unicode"

// IsWord reports whether a token counts toward a chapter's word count:
// it must contain at least one letter or digit, so punctuation and
// whitespace tokens are excluded.
func IsWord(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// Dedupe returns entries in first-seen order without repeats.
func Dedupe(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
