// Package history lists past session results, expandable to their
// per-domain breakdown.
package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"auditprep/internal/bank"
	"auditprep/internal/perf"
	"auditprep/internal/router"
	"auditprep/internal/screen"
	"auditprep/internal/ui/layout"
	"auditprep/internal/ui/theme"
)

// HistoryScreen displays past sessions.
type HistoryScreen struct {
	rec      *perf.Recorder
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(rec *perf.Recorder) *HistoryScreen {
	return &HistoryScreen{
		rec:      rec,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < s.rec.Sessions()-1 {
			s.selected++
		}
	case "enter":
		s.expanded[s.selected] = !s.expanded[s.selected]
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	results := s.rec.History()
	if len(results) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  No sessions yet. Finish one and it will show up here.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, res := range results {
		scoreStyle := theme.Correct
		if res.Percentage < 50 {
			scoreStyle = theme.Incorrect
		}

		line := fmt.Sprintf("%s   %-20s %3d%%   %d/%d   %d min",
			res.Timestamp.Format("2006-01-02 15:04"),
			res.Mode,
			res.Percentage,
			res.CorrectCount,
			res.TotalQuestions,
			res.ElapsedMinutes,
		)

		if i == s.selected {
			b.WriteString(theme.Selected.Render("  ▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    "))
			b.WriteString(scoreStyle.Render(line))
		}
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range bank.Domains() {
				ds, ok := res.Domains[d]
				if !ok {
					continue
				}
				b.WriteString(lipgloss.NewStyle().
					Foreground(theme.TextDim).
					Render(fmt.Sprintf("        %-50s %d/%d", d, ds.Correct, ds.Total)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
