package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"auditprep/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with an optional
// leading label and trailing percentage.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// DomainBar builds the standard breakdown row for one domain: the
// padded label, a correct/total tally, and a fill proportional to
// accuracy. Zero-total domains render an empty bar.
func DomainBar(domain string, correct, total, width int) ProgressBar {
	pct := 0.0
	if total > 0 {
		pct = float64(correct) / float64(total)
	}
	return ProgressBar{
		Label:   fmt.Sprintf("%-42s %2d/%2d", domain, correct, total),
		Percent: pct,
		Width:   width,
	}
}

// View renders the bar.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	labelWidth := lipgloss.Width(b.String())
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	b.WriteString(lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled)))

	if p.ShowPercent {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}

	return b.String()
}
