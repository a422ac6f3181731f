package report

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatShare renders a fraction as a percentage with one decimal,
// e.g. 16/34 as "47.1%".
func FormatShare(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

// FormatRate renders a per-10k rate with one decimal.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.1f", rate)
}

// FormatCount renders a count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
