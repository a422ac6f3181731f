package report

import "testing"

func TestFormatShare(t *testing.T) {
	if got := FormatShare(16.0 / 34.0); got != "47.1%" {
		t.Fatalf("expected 47.1%%, got %q", got)
	}
	if got := FormatShare(0.25); got != "25.0%" {
		t.Fatalf("expected 25.0%%, got %q", got)
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(45 * 10000.0 / 7763); got != "58.0" {
		t.Fatalf("expected 58.0, got %q", got)
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(126097); got != "126,097" {
		t.Fatalf("expected 126,097, got %q", got)
	}
}
