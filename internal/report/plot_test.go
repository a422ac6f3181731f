package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlot(t *testing.T) {
	var buf bytes.Buffer
	err := Plot(&buf, []Series{
		{Name: "rate", Values: []float64{10, 20, 30, 20, 10}},
		{Name: "threshold", Values: []float64{15, 15, 15, 15, 15}},
	}, 12, 4, Painter{})
	if err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 4 plot rows and a legend, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "30.0 │ ") {
		t.Fatalf("expected max label on top row, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "10.0 │ ") {
		t.Fatalf("expected min label on bottom row, got %q", lines[3])
	}
	if !strings.Contains(lines[4], "rate (solid)") || !strings.Contains(lines[4], "threshold (dashed)") {
		t.Fatalf("unexpected legend %q", lines[4])
	}
	for _, line := range lines[:4] {
		cells := []rune(strings.SplitN(line, "│ ", 2)[1])
		if len(cells) != 12 {
			t.Fatalf("expected 12 plot cells, got %d in %q", len(cells), line)
		}
	}
}

func TestPlot_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Plot(&buf, []Series{{Name: "rate"}}, 10, 4, Painter{}); err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestStretch(t *testing.T) {
	got := stretch([]float64{0, 10}, 3)
	want := []float64{0, 5, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if got := stretch([]float64{1, 2, 3, 4}, 2); got[0] != 1.5 || got[1] != 3.5 {
		t.Fatalf("expected averaged buckets, got %v", got)
	}
	if got := stretch([]float64{7}, 3); got[2] != 7 {
		t.Fatalf("expected flat line, got %v", got)
	}
}

func TestBrailleDotMask(t *testing.T) {
	cells := makeCells(1, 1)
	setBrailleDot(cells, 0, 0)
	setBrailleDot(cells, 1, 3)
	if got := brailleFromMask(cells[0][0]); got != '⢁' {
		t.Fatalf("unexpected braille cell %q", got)
	}
}
