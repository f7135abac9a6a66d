// Package summary displays the scored result of a finished session.
package summary

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"auditprep/internal/bank"
	"auditprep/internal/router"
	"auditprep/internal/screen"
	"auditprep/internal/session"
	"auditprep/internal/ui/components"
	"auditprep/internal/ui/layout"
	"auditprep/internal/ui/theme"
)

// SummaryScreen displays the session result.
type SummaryScreen struct {
	result     *session.Result
	persistErr error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result *session.Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

// NewWithError creates a summary that also warns that the result could
// not be saved.
func NewWithError(result *session.Result, err error) *SummaryScreen {
	return &SummaryScreen{result: result, persistErr: err}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}

	var b strings.Builder

	title := "Session complete!"
	if res.Mode == session.ModeExam {
		title = "Exam submitted"
	}
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(title))
	b.WriteString("\n\n")

	scoreStyle := theme.Correct
	if res.Percentage < 50 {
		scoreStyle = theme.Incorrect
	}
	scoreLine := fmt.Sprintf("%d%%", res.Percentage) + lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("   (%d of %d correct)", res.CorrectCount, res.TotalQuestions))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, scoreStyle.Render(scoreLine)))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%s · %d min", res.Mode, res.ElapsedMinutes)))
	b.WriteString("\n\n")

	// Per-domain breakdown.
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Domains")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, d := range sortedDomains(res.Domains) {
		ds := res.Domains[d]
		bar := components.DomainBar(string(d), ds.Correct, ds.Total, min(width-8, 70))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	if missed := len(res.MissedIDs()); missed > 0 && res.Mode.IsPractice() {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render(
			fmt.Sprintf("%d questions added to your review pool", missed)))
		b.WriteString("\n")
	}

	if s.persistErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render("Could not save this result: "+s.persistErr.Error())))
		b.WriteString("\n")
	}

	return b.String()
}

// sortedDomains orders the breakdown canonically, unknown domains last.
func sortedDomains(scores map[bank.Domain]session.DomainScore) []bank.Domain {
	canonical := bank.Domains()
	rank := make(map[bank.Domain]int, len(canonical))
	for i, d := range canonical {
		rank[d] = i
	}

	out := make([]bank.Domain, 0, len(scores))
	for d := range scores {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iok := rank[out[i]]
		rj, jok := rank[out[j]]
		if iok != jok {
			return iok
		}
		if iok && jok {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
