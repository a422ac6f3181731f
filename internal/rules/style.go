package rules

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/verte-zerg/prosestat/internal/model"
)

// ParseStyle reads spelling families in the line format
//
//	preferred <= alt1, alt2, alt3
//
// Blank lines and lines starting with '#' are skipped. A line without "<=",
// without a preferred form or without alternatives is rejected.
func ParseStyle(r io.Reader) ([]FamilyEntry, error) {
	var entries []FamilyEntry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		left, right, ok := strings.Cut(line, "<=")
		if !ok {
			return nil, malformedStyle(lineNo, line)
		}
		preferred := strings.TrimSpace(left)
		var alts []string
		for _, alt := range strings.Split(right, ",") {
			if alt = strings.TrimSpace(alt); alt != "" {
				alts = append(alts, alt)
			}
		}
		if preferred == "" || len(alts) == 0 {
			return nil, malformedStyle(lineNo, line)
		}
		entries = append(entries, FamilyEntry{Preferred: preferred, Variants: alts})
	}
	if err := scanner.Err(); err != nil {
		return nil, &model.ConfigError{
			RuleSet: SetFamilies,
			Field:   fmt.Sprintf("line %d", lineNo+1),
			Reason:  fmt.Sprintf("failed to read style file: %v", err),
		}
	}
	return entries, nil
}

// LoadStyle reads a style file from disk.
func LoadStyle(path string) ([]FamilyEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &model.ConfigError{RuleSet: SetFamilies, Field: "families_file", Reason: err.Error()}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only file.
			_ = cerr
		}
	}()
	return ParseStyle(file)
}

func malformedStyle(lineNo int, line string) error {
	return &model.ConfigError{
		RuleSet: SetFamilies,
		Field:   fmt.Sprintf("line %d", lineNo),
		Reason:  fmt.Sprintf("malformed style line %q (want: preferred <= alt1, alt2)", line),
	}
}
