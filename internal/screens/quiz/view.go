package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"auditprep/internal/session"
	"auditprep/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	if q.errMsg != "" {
		return renderError(width, q.errMsg)
	}
	if q.confirmQuit {
		return renderQuitConfirm(width, q.sess.Mode())
	}
	return q.renderQuestion(width)
}

// renderQuestion renders the active question with its options and,
// after a practice answer, the reveal block.
func (q *QuizScreen) renderQuestion(width int) string {
	cur := q.sess.Current()

	var b strings.Builder

	// Info line: position and domain left, timer or answered count right.
	bookmark := ""
	if q.bookmarked {
		bookmark = lipgloss.NewStyle().Foreground(theme.Accent).Render(" ★")
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Q %d/%d · %s", q.sess.Cursor()+1, q.sess.Len(), cur.Domain)) + bookmark

	var infoRight string
	if q.sess.Mode().Timed() {
		rem := q.sess.Remaining()
		mins := int(rem.Minutes())
		secs := int(rem.Seconds()) % 60
		timer := fmt.Sprintf("%d:%02d", mins, secs)
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if mins < 5 {
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		}
		infoRight = style.Render(fmt.Sprintf("answered %d/%d   %s",
			q.sess.AnsweredCount(), q.sess.Len(), timer))
	} else {
		infoRight = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("answered %d/%d", q.sess.AnsweredCount(), q.sess.Len()))
	}

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n")

	if q.note != "" {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(q.note))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Question text.
	b.WriteString(lipgloss.NewStyle().
		Width(min(width-8, 76)).
		Foreground(theme.Text).
		Bold(true).
		Render(cur.Text))
	b.WriteString("\n\n")

	b.WriteString(q.opts.View())

	if q.showingFeedback() {
		b.WriteString("\n")
		b.WriteString(q.renderReveal(width))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}

// renderReveal renders the practice verdict and explanation.
func (q *QuizScreen) renderReveal(width int) string {
	cur := q.sess.Current()

	var b strings.Builder
	if q.opts.IsCorrect() {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite"))
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("The answer is %s.", cur.CorrectLetter())))
	}
	b.WriteString("\n")

	if cur.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(min(width-8, 76)).
			Foreground(theme.Text).
			Render(cur.Explanation))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Press Enter for the next question."))
	return b.String()
}

// renderQuitConfirm renders the end-session confirmation dialog.
func renderQuitConfirm(width int, mode session.Mode) string {
	prompt := "End this session early?"
	note := "Your answers so far will be scored and saved."
	if mode == session.ModeExam {
		prompt = "Submit the exam now?"
		note = "Unanswered questions count as wrong."
	}

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(prompt))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(note))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] Keep going"))
	return b.String()
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
