// Package stats shows the long-run performance picture: accuracy per
// domain, the weakest area, and the countdown to the scheduled exam.
package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"auditprep/internal/bank"
	"auditprep/internal/perf"
	"auditprep/internal/router"
	"auditprep/internal/screen"
	"auditprep/internal/store"
	"auditprep/internal/ui/components"
	"auditprep/internal/ui/layout"
	"auditprep/internal/ui/theme"
)

// StatsScreen displays aggregate performance.
type StatsScreen struct {
	rec      *perf.Recorder
	examDate time.Time
	hasDate  bool
	perDay   int
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates the statistics screen, loading the exam date and study
// plan settings.
func New(rec *perf.Recorder, kv *store.KV) *StatsScreen {
	s := &StatsScreen{rec: rec}

	ctx := context.Background()
	var dateStr string
	if found, _ := kv.Get(ctx, store.KeyExamDate, &dateStr); found {
		if t, err := time.Parse("2006-01-02", dateStr); err == nil {
			s.examDate = t
			s.hasDate = true
		}
	}
	kv.Get(ctx, store.KeyStudyPlan, &s.perDay)

	return s
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	acc, hasData := s.rec.OverallAccuracy()
	if !hasData {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  No data yet. Answer some questions first.")
	}

	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%d sessions · overall accuracy %.0f%%", s.rec.Sessions(), acc*100)))
	b.WriteString("\n\n")

	for _, d := range bank.Domains() {
		domAcc, ok := s.rec.DomainAccuracy(d)
		label := fmt.Sprintf("%-50s", d)
		if !ok {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(label+"  not practiced yet")))
			b.WriteString("\n")
			continue
		}
		bar := components.NewProgressBar(label, domAcc, true, min(width-8, 76))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	if weakest, ok := s.rec.WeakestDomain(); ok {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render(
			fmt.Sprintf("Focus area: %s", weakest)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.renderPlan(width))

	return b.String()
}

// renderPlan renders the exam countdown and study plan line.
func (s *StatsScreen) renderPlan(width int) string {
	if !s.hasDate {
		return theme.Hint.Width(width).Align(lipgloss.Center).
			Render("Set your exam date in Settings to see a countdown.")
	}

	days := int(time.Until(s.examDate).Hours() / 24)
	var line string
	switch {
	case days < 0:
		line = "Your scheduled exam date has passed."
	case days == 0:
		line = "Exam day is today. Good luck!"
	default:
		line = fmt.Sprintf("%d days until your exam", days)
		if s.perDay > 0 {
			line += fmt.Sprintf(" · about %d more questions at %d/day", days*s.perDay, s.perDay)
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(line)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
