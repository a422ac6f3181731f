package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	columnGap = "  "
	ellipsis  = "…"
)

// column describes one table column. Cells wider than limit are cut with an
// ellipsis; a zero limit keeps them whole.
type column struct {
	title string
	right bool
	limit int
}

func leftCol(title string) column  { return column{title: title} }
func rightCol(title string) column { return column{title: title, right: true} }

func (c column) upTo(limit int) column {
	c.limit = limit
	return c
}

// formatTable lays out a header line and one line per row. Widths are
// measured in terminal cells and trailing padding is trimmed.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	cells := make([][]string, 0, len(rows)+1)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	cells = append(cells, header)
	for _, row := range rows {
		line := make([]string, len(cols))
		for i, c := range cols {
			if i < len(row) {
				line[i] = clip(row[i], c.limit)
			}
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(cols))
	for _, line := range cells {
		for i, cell := range line {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}

	lines := make([]string, 0, len(cells))
	for _, line := range cells {
		var b strings.Builder
		for i, cell := range line {
			if i > 0 {
				b.WriteString(columnGap)
			}
			b.WriteString(padCell(cell, widths[i], cols[i].right))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

func clip(value string, limit int) string {
	if limit <= 0 || displayWidth(value) <= limit {
		return value
	}
	return runewidth.Truncate(value, limit, ellipsis)
}

func padCell(value string, width int, right bool) string {
	padding := width - displayWidth(value)
	if padding <= 0 {
		return value
	}
	if right {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

// displayWidth counts terminal cells, so wide CJK titles and chapter names
// still line up.
func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
