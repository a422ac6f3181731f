package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/prosestat/internal/model"
)

const (
	shortIDLen   = 8
	maxPathWidth = 40
)

// RenderRuns lists archived runs, oldest first.
func RenderRuns(w io.Writer, runs []model.RunSummary, p Painter) error {
	if len(runs) == 0 {
		return writeLines(w, "No runs recorded yet.")
	}
	cols := []column{
		leftCol("Run"), leftCol("When"), leftCol("Corpus").upTo(maxPathWidth),
		rightCol("Chapters"), rightCol("Words"), rightCol("Flagged"), rightCol("Skipped"),
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			shortID(r.ID),
			humanize.Time(r.CreatedAt),
			r.CorpusPath,
			FormatCount(r.Chapters),
			FormatCount(r.TotalWords),
			FormatCount(r.Flagged),
			FormatCount(r.Skipped),
		})
	}
	lines := formatTable(cols, rows)
	for i, line := range lines {
		if i == 0 {
			line = p.Header(line)
		}
		if err := writeLines(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRun prints one archived run in detail.
func RenderRun(w io.Writer, run model.RunRecord, p Painter) error {
	header := fmt.Sprintf("%s  %s", p.Title("Run "+run.ID), run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	info := []string{
		header,
		fmt.Sprintf("Corpus: %s", run.CorpusPath),
		fmt.Sprintf("Rules: %s", valueOr(run.RulesPath, "(none)")),
		fmt.Sprintf("Chapters: %d, words: %s, flagged: %d, skipped: %d",
			run.Chapters, FormatCount(run.TotalWords), run.Flagged, run.Skipped),
		"",
	}
	if err := writeLines(w, info...); err != nil {
		return err
	}
	if err := RenderOveruse(w, run.Overuse, p); err != nil {
		return err
	}
	if err := renderVariantCounts(w, run.Variants, p); err != nil {
		return err
	}
	return RenderRates(w, run.Rates, Options{Painter: p})
}

func renderVariantCounts(w io.Writer, counts []model.VariantCount, p Painter) error {
	if _, err := fmt.Fprintln(w, p.Title("Style families")); err != nil {
		return err
	}
	if len(counts) == 0 {
		return writeLines(w, "No style families to report.", "")
	}
	cols := []column{leftCol("Family"), leftCol("Form"), rightCol("Count"), leftCol("Severity")}
	rows := make([][]string, 0, len(counts))
	sev := make([]model.Severity, 0, len(counts))
	for _, c := range counts {
		form := c.Form
		if c.Preferred {
			form += " (preferred)"
		}
		rows = append(rows, []string{c.FamilyID, form, FormatCount(c.Count), c.Severity.String()})
		sev = append(sev, c.Severity)
	}
	return writeTable(w, formatTable(cols, rows), sev, p)
}

// TrendOptions sizes the trend plot. Zero values fit the terminal.
type TrendOptions struct {
	Width  int
	Height int
}

// RenderTrend prints the rate of one watched word across archived runs,
// plotted against its threshold.
func RenderTrend(w io.Writer, word string, points []model.RatePoint, p Painter, opts TrendOptions) error {
	if len(points) == 0 {
		return writeLines(w, fmt.Sprintf("No recorded runs watch %q.", word))
	}
	rates := make([]float64, len(points))
	thresholds := make([]float64, len(points))
	for i, pt := range points {
		rates[i] = pt.Rate
		thresholds[i] = pt.Threshold
	}
	first, last := points[0], points[len(points)-1]
	lines := []string{
		p.Title(fmt.Sprintf("%s per 10k words", word)),
		fmt.Sprintf("first  %s (%s)", FormatRate(first.Rate), humanize.Time(first.CreatedAt)),
		fmt.Sprintf("last   %s (%s)", FormatRate(last.Rate), humanize.Time(last.CreatedAt)),
		"",
	}
	if err := writeLines(w, lines...); err != nil {
		return err
	}
	if len(points) > 1 {
		series := []Series{{Name: "rate", Values: rates}, {Name: "threshold", Values: thresholds}}
		if err := Plot(w, series, opts.Width, opts.Height, p); err != nil {
			return err
		}
		if err := writeLines(w, ""); err != nil {
			return err
		}
	}

	cols := []column{
		leftCol("Run"), rightCol("Count"), rightCol("Words"), rightCol("Rate"), rightCol("Threshold"), leftCol("Status"),
	}
	rows := make([][]string, 0, len(points))
	for _, pt := range points {
		status := "ok"
		if pt.Exceeds {
			status = "over"
		}
		rows = append(rows, []string{
			shortID(pt.RunID),
			FormatCount(pt.Count),
			FormatCount(pt.TotalWords),
			FormatRate(pt.Rate),
			FormatRate(pt.Threshold),
			status,
		})
	}
	table := formatTable(cols, rows)
	for i, line := range table {
		switch {
		case i == 0:
			line = p.Header(line)
		case points[i-1].Exceeds:
			line = p.Severity(model.SeverityAdvisory, line)
		}
		if err := writeLines(w, line); err != nil {
			return err
		}
	}
	return nil
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
