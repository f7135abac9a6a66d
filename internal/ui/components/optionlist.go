package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"auditprep/internal/ui/theme"
)

// OptionList renders a question's answer options. In reveal mode
// (practice) a submitted answer colors the correct option green and a
// wrong pick red; without reveal (exam) the chosen option is only
// marked, never judged.
type OptionList struct {
	Options      []string
	CorrectIndex int
	Reveal       bool

	Selected  int
	Chosen    int
	Submitted bool
}

// NewOptionList creates an option list with nothing chosen yet.
func NewOptionList(options []string, correctIndex int, reveal bool) OptionList {
	return OptionList{
		Options:      options,
		CorrectIndex: correctIndex,
		Reveal:       reveal,
		Chosen:       -1,
	}
}

// SetChosen restores a previously recorded answer, as when navigating
// back to an already-answered exam question.
func (o *OptionList) SetChosen(idx int) {
	o.Chosen = idx
	if idx >= 0 {
		o.Selected = idx
		o.Submitted = true
	}
}

// Update handles cursor movement. Selection is frozen after submit in
// reveal mode; exam options stay navigable so the answer can change.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Submitted && o.Reveal {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	}

	return o, nil
}

// Choose records the option under the cursor as the answer.
func (o *OptionList) Choose() {
	o.Chosen = o.Selected
	o.Submitted = true
}

// IsCorrect reports whether the chosen option is the correct one.
func (o OptionList) IsCorrect() bool {
	return o.Submitted && o.Chosen == o.CorrectIndex
}

// View renders the option rows.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		letter := string(rune('A' + i))
		prefix := "  "
		if i == o.Selected && !(o.Submitted && o.Reveal) {
			prefix = "▸ "
		}
		marker := " "
		if o.Submitted && i == o.Chosen && !o.Reveal {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, letter, opt)

		switch {
		case o.Submitted && o.Reveal && i == o.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case o.Submitted && o.Reveal && i == o.Chosen:
			s += theme.Incorrect.Render(line) + "\n"
		case o.Submitted && o.Reveal:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == o.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
