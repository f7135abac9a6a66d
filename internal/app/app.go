// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"auditprep/internal/bank"
	"auditprep/internal/config"
	"auditprep/internal/perf"
	"auditprep/internal/router"
	"auditprep/internal/screen"
	"auditprep/internal/screens/home"
	"auditprep/internal/selection"
	"auditprep/internal/store"
	"auditprep/internal/ui/layout"
	"auditprep/internal/ui/theme"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	rec    *perf.Recorder
	width  int
	height int
}

// newAppModel applies the stored appearance and builds the home screen.
func newAppModel(catalog bank.Catalog, rec *perf.Recorder, sel *selection.Selector, cfg config.Config, kv *store.KV) AppModel {
	dark := true
	kv.Get(context.Background(), store.KeyDarkMode, &dark)
	theme.SetDark(dark)

	return AppModel{
		router: router.New(home.New(catalog, rec, sel, cfg, kv)),
		rec:    rec,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStatus(), m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// headerStatus summarizes progress for the header's right side.
func (m AppModel) headerStatus() string {
	if acc, ok := m.rec.OverallAccuracy(); ok {
		return fmt.Sprintf("▣ %d  ·  %.0f%%", m.rec.Sessions(), acc*100)
	}
	return ""
}

// Run starts the Bubble Tea program.
func Run(catalog bank.Catalog, rec *perf.Recorder, sel *selection.Selector, cfg config.Config, kv *store.KV) error {
	p := tea.NewProgram(newAppModel(catalog, rec, sel, cfg, kv))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
