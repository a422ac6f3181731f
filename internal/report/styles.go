package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/prosestat/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	hardStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	advisoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Painter applies terminal styles when color is enabled.
type Painter struct {
	color bool
}

// NewPainter returns a painter. With color off every method returns its
// input unchanged.
func NewPainter(color bool) Painter {
	return Painter{color: color}
}

func (p Painter) paint(style lipgloss.Style, s string) string {
	if !p.color || s == "" {
		return s
	}
	return style.Render(s)
}

// Title styles a section title.
func (p Painter) Title(s string) string { return p.paint(titleStyle, s) }

// Header styles a table header line.
func (p Painter) Header(s string) string { return p.paint(headerStyle, s) }

// Muted styles secondary detail such as contexts.
func (p Painter) Muted(s string) string { return p.paint(mutedStyle, s) }

// Severity styles a line by the severity of its finding.
func (p Painter) Severity(sev model.Severity, s string) string {
	if sev == model.SeverityHard {
		return p.paint(hardStyle, s)
	}
	return p.paint(advisoryStyle, s)
}
