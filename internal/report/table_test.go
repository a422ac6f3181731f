package report

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	cols := []column{leftCol("Word"), rightCol("Rate"), rightCol("Count")}
	rows := [][]string{
		{"like", "58.0", "45"},
		{"suddenly", "2.6", "2"},
	}

	lines := formatTable(cols, rows)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Word      Rate  Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "like      58.0     45" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "suddenly   2.6      2" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]column{leftCol("Chapter"), rightCol("N")}, [][]string{{"第一章", "3"}, {"c2", "10"}})
	if lines[1] != "第一章    3" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "c2       10" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestFormatTableClipsLongCells(t *testing.T) {
	cols := []column{leftCol("Corpus").upTo(8), rightCol("N")}
	lines := formatTable(cols, [][]string{{"/home/writer/novel/book.json", "1"}, {"short", "2"}})
	if lines[1] != "/home/w…  1" {
		t.Fatalf("unexpected clipped row: %q", lines[1])
	}
	if lines[2] != "short     2" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestFormatTableShortRows(t *testing.T) {
	lines := formatTable([]column{leftCol("A"), leftCol("B")}, [][]string{{"x"}})
	if lines[1] != "x" {
		t.Fatalf("expected missing cells to be blank, got %q", lines[1])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}
