// Package settings edits the durable preferences: appearance, adaptive
// practice, exam date, and the daily study plan.
package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"auditprep/internal/config"
	"auditprep/internal/router"
	"auditprep/internal/screen"
	"auditprep/internal/store"
	"auditprep/internal/ui/components"
	"auditprep/internal/ui/layout"
	"auditprep/internal/ui/theme"
)

const dateLayout = "2006-01-02"

const (
	itemDarkMode = iota
	itemAdaptive
	itemExamDate
	itemStudyPlan
	itemCount
)

// SettingsScreen edits stored preferences in place.
type SettingsScreen struct {
	kv *store.KV

	darkMode bool
	adaptive bool
	examDate string
	perDay   int

	selected int
	editing  bool
	input    components.TextInput
	saveErr  string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the settings screen with current stored values. cfg
// supplies defaults for anything never saved.
func New(kv *store.KV, cfg config.Config) *SettingsScreen {
	s := &SettingsScreen{
		kv:       kv,
		darkMode: true,
		adaptive: cfg.Adaptive,
	}

	ctx := context.Background()
	kv.Get(ctx, store.KeyDarkMode, &s.darkMode)
	kv.Get(ctx, store.KeyAdaptiveMode, &s.adaptive)
	kv.Get(ctx, store.KeyExamDate, &s.examDate)
	kv.Get(ctx, store.KeyStudyPlan, &s.perDay)

	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Change"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.editing {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.editing {
		return s.handleEditKey(kmsg)
	}

	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < itemCount-1 {
			s.selected++
		}
	case "enter", " ", "left", "right":
		return s.activate()
	}
	return s, nil
}

// activate toggles boolean items or opens the editor for text items.
func (s *SettingsScreen) activate() (screen.Screen, tea.Cmd) {
	s.saveErr = ""
	switch s.selected {
	case itemDarkMode:
		s.darkMode = !s.darkMode
		theme.SetDark(s.darkMode)
		s.save(store.KeyDarkMode, s.darkMode)
	case itemAdaptive:
		s.adaptive = !s.adaptive
		s.save(store.KeyAdaptiveMode, s.adaptive)
	case itemExamDate:
		s.editing = true
		s.input = components.NewTextInput(dateLayout, false, 10)
		s.input.SetValue(s.examDate)
		return s, s.input.Init()
	case itemStudyPlan:
		s.editing = true
		s.input = components.NewTextInput("questions per day", true, 3)
		if s.perDay > 0 {
			s.input.SetValue(fmt.Sprintf("%d", s.perDay))
		}
		return s, s.input.Init()
	}
	return s, nil
}

func (s *SettingsScreen) handleEditKey(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		s.editing = false
		return s, nil
	case "enter":
		return s.commitEdit()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(kmsg)
	return s, cmd
}

func (s *SettingsScreen) commitEdit() (screen.Screen, tea.Cmd) {
	switch s.selected {
	case itemExamDate:
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			s.examDate = ""
			s.editing = false
			s.save(store.KeyExamDate, "")
			return s, nil
		}
		if _, err := time.Parse(dateLayout, val); err != nil {
			s.input.Submit(false)
			return s, nil
		}
		s.examDate = val
		s.editing = false
		s.save(store.KeyExamDate, val)
	case itemStudyPlan:
		n, err := s.input.NumericValue()
		if err != nil || n < 0 {
			s.input.Submit(false)
			return s, nil
		}
		s.perDay = n
		s.editing = false
		s.save(store.KeyStudyPlan, n)
	}
	return s, nil
}

func (s *SettingsScreen) save(key string, v any) {
	if err := s.kv.Put(context.Background(), key, v); err != nil {
		s.saveErr = "could not save setting: " + err.Error()
	}
}

func (s *SettingsScreen) View(width, height int) string {
	rows := []struct {
		label string
		value string
	}{
		{"Dark mode", onOff(s.darkMode)},
		{"Adaptive practice", onOff(s.adaptive)},
		{"Exam date", orUnset(s.examDate)},
		{"Study plan", planLabel(s.perDay)},
	}

	var b strings.Builder
	b.WriteString("\n\n")

	for i, row := range rows {
		value := row.value
		if s.editing && i == s.selected {
			value = s.input.View()
		}
		line := fmt.Sprintf("%-24s %s", row.label, value)
		if i == s.selected {
			b.WriteString(theme.Selected.Render("  ▸ " + line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    " + line))
		}
		b.WriteString("\n\n")
	}

	if s.saveErr != "" {
		b.WriteString(theme.Incorrect.Render("  " + s.saveErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("  Adaptive practice weights new sessions toward your weak spots."))

	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func orUnset(v string) string {
	if v == "" {
		return "not set"
	}
	return v
}

func planLabel(n int) string {
	if n <= 0 {
		return "not set"
	}
	return fmt.Sprintf("%d questions/day", n)
}
