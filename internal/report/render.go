package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/prosestat/internal/engine"
	"github.com/verte-zerg/prosestat/internal/model"
	"github.com/verte-zerg/prosestat/internal/rules"
)

// Options controls the text rendering of a result.
type Options struct {
	Painter Painter
	// Contexts caps the contexts printed per variant or phrase. 0 prints none.
	Contexts int
	// Width bounds sparklines. 0 means the terminal width.
	Width int
}

// RenderResult prints a summary line followed by one section per rule set.
// Skipped rule sets are listed last instead of their section.
func RenderResult(w io.Writer, res engine.Result, opts Options) error {
	p := opts.Painter
	if _, err := fmt.Fprintf(w, "%s: %d chapters, %s words, %d flagged\n\n",
		p.Title("prosestat"), res.Chapters, FormatCount(res.TotalWords), res.Flagged()); err != nil {
		return err
	}
	skipped := make(map[string]bool, len(res.Skipped))
	for _, s := range res.Skipped {
		skipped[s.RuleSet] = true
	}
	if !skipped[rules.SetOveruse] {
		if err := RenderOveruse(w, res.Overuse, p); err != nil {
			return err
		}
	}
	if !skipped[rules.SetFamilies] {
		if err := RenderFamilies(w, res.Families, opts); err != nil {
			return err
		}
	}
	if !skipped[rules.SetCrutchWords] {
		if err := RenderRates(w, res.Rates, opts); err != nil {
			return err
		}
	}
	if !skipped[rules.SetPhrases] {
		if err := RenderPhrases(w, res.Phrases, opts); err != nil {
			return err
		}
	}
	return RenderSkipped(w, res.Skipped, p)
}

// RenderOveruse prints lemmas concentrated in one chapter.
func RenderOveruse(w io.Writer, findings []model.OveruseFinding, p Painter) error {
	if _, err := fmt.Fprintln(w, p.Title("Overuse")); err != nil {
		return err
	}
	if len(findings) == 0 {
		return writeLines(w, "No concentrated lemmas found.", "")
	}
	cols := []column{
		leftCol("Lemma"), rightCol("Total"), leftCol("Top chapter"), rightCol("Count"), rightCol("Share"), leftCol("Severity"),
	}
	rows := make([][]string, 0, len(findings))
	sev := make([]model.Severity, 0, len(findings))
	for _, f := range findings {
		sev = append(sev, f.Severity)
		rows = append(rows, []string{
			f.Lemma,
			FormatCount(f.Total),
			f.TopChapter,
			FormatCount(f.TopCount),
			FormatShare(f.Share),
			f.Severity.String(),
		})
	}
	return writeTable(w, formatTable(cols, rows), sev, p)
}

// RenderFamilies prints preferred and variant counts for each family and the
// first contexts of each used variant.
func RenderFamilies(w io.Writer, reports []model.FamilyReport, opts Options) error {
	p := opts.Painter
	if _, err := fmt.Fprintln(w, p.Title("Style families")); err != nil {
		return err
	}
	if len(reports) == 0 {
		return writeLines(w, "No style families to report.", "")
	}
	cols := []column{leftCol("Family"), leftCol("Form"), rightCol("Count"), leftCol("Severity")}
	var rows [][]string
	for _, r := range reports {
		rows = append(rows, []string{r.FamilyID, r.Preferred + " (preferred)", FormatCount(r.PreferredCount), r.Severity.String()})
		for _, v := range r.Variants {
			rows = append(rows, []string{"", v.Form, FormatCount(v.Count), ""})
		}
	}
	lines := formatTable(cols, rows)
	if err := writeTable(w, lines[:1], nil, p); err != nil {
		return err
	}

	// Table lines are printed per family so contexts sit under their variant.
	line := 1
	for _, r := range reports {
		text := lines[line]
		if r.HasVariants() {
			text = p.Severity(r.Severity, text)
		}
		if err := writeLines(w, text); err != nil {
			return err
		}
		line++
		for _, v := range r.Variants {
			text := lines[line]
			if v.Count == 0 {
				text = p.Muted(text)
			} else {
				text = p.Severity(r.Severity, text)
			}
			if err := writeLines(w, text); err != nil {
				return err
			}
			line++
			for _, occ := range firstN(v.Occurrences, opts.Contexts) {
				ctx := fmt.Sprintf("    %s:%d  %s", occ.ChapterID, occ.Line, occ.Snippet)
				if err := writeLines(w, p.Muted(ctx)); err != nil {
					return err
				}
			}
		}
	}
	return writeLines(w, "")
}

// RenderRates prints watched word rates with their benchmarks and a
// per-chapter sparkline.
func RenderRates(w io.Writer, findings []model.RateFinding, opts Options) error {
	p := opts.Painter
	if _, err := fmt.Fprintln(w, p.Title("Crutch words (per 10k words)")); err != nil {
		return err
	}
	if len(findings) == 0 {
		return writeLines(w, "No crutch words to report.", "")
	}
	cols := []column{
		leftCol("Word"), rightCol("Count"), rightCol("Rate"), rightCol("Threshold"), leftCol("Status"), leftCol("Severity"),
	}
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		status := "ok"
		if f.Exceeds {
			status = "over"
		}
		rows = append(rows, []string{
			f.Word,
			FormatCount(f.Count),
			FormatRate(f.Rate),
			FormatRate(f.Threshold),
			status,
			f.Severity.String(),
		})
	}
	lines := formatTable(cols, rows)
	if err := writeTable(w, lines[:1], nil, p); err != nil {
		return err
	}
	width := opts.Width
	if width <= 0 {
		width = TerminalWidth()
	}
	for i, f := range findings {
		text := lines[i+1]
		if f.Exceeds {
			text = p.Severity(f.Severity, text)
		}
		if err := writeLines(w, text); err != nil {
			return err
		}
		for _, b := range f.Benchmarks {
			line := fmt.Sprintf("    %s: %s in %s words (%s)", b.Title, FormatCount(b.Count), FormatCount(b.Words), FormatRate(b.Rate))
			if err := writeLines(w, p.Muted(line)); err != nil {
				return err
			}
		}
		if len(f.Chapters) > 1 && f.Count > 0 {
			rates := make([]float64, len(f.Chapters))
			for j, ch := range f.Chapters {
				rates[j] = ch.Rate
			}
			spark := Sparkline(Downsample(rates, width-len("    chapters ")))
			if err := writeLines(w, p.Muted("    chapters "+spark)); err != nil {
				return err
			}
		}
	}
	return writeLines(w, "")
}

// RenderPhrases prints stock phrases by count with their first contexts.
func RenderPhrases(w io.Writer, findings []model.PhraseFinding, opts Options) error {
	p := opts.Painter
	if _, err := fmt.Fprintln(w, p.Title("Stock phrases")); err != nil {
		return err
	}
	if len(findings) == 0 {
		return writeLines(w, "No stock phrases found.", "")
	}
	cols := []column{leftCol("Phrase"), rightCol("Count"), leftCol("Severity")}
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, []string{f.Phrase, FormatCount(f.Count), f.Severity.String()})
	}
	lines := formatTable(cols, rows)
	if err := writeTable(w, lines[:1], nil, p); err != nil {
		return err
	}
	for i, f := range findings {
		if err := writeLines(w, p.Severity(f.Severity, lines[i+1])); err != nil {
			return err
		}
		for _, occ := range firstN(f.Occurrences, opts.Contexts) {
			ctx := fmt.Sprintf("    %s:%d  %s", occ.ChapterID, occ.Line, occ.Snippet)
			if err := writeLines(w, p.Muted(ctx)); err != nil {
				return err
			}
		}
	}
	return writeLines(w, "")
}

// RenderSkipped lists rule sets that produced no findings.
func RenderSkipped(w io.Writer, skipped []engine.Skip, p Painter) error {
	if len(skipped) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, p.Title("Skipped")); err != nil {
		return err
	}
	for _, s := range skipped {
		if err := writeLines(w, p.Severity(model.SeverityHard, fmt.Sprintf("%s: %s", s.RuleSet, s.Reason))); err != nil {
			return err
		}
	}
	return writeLines(w, "")
}

func writeTable(w io.Writer, lines []string, sev []model.Severity, p Painter) error {
	for i, line := range lines {
		switch {
		case i == 0:
			line = p.Header(line)
		case i-1 < len(sev):
			line = p.Severity(sev[i-1], line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(lines) > 1 {
		_, err := fmt.Fprintln(w, "")
		return err
	}
	return nil
}

func writeLines(w io.Writer, lines ...string) error {
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func firstN[T any](items []T, n int) []T {
	if n <= 0 {
		return nil
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
