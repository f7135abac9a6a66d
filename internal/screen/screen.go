// Package screen defines the contract between the router and the
// application's views.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"auditprep/internal/ui/layout"
)

// Screen is one full-terminal view driven by the router stack: the
// home menu, a running quiz, the summary, and so on.
type Screen interface {
	// Init returns the command to run when the screen becomes active.
	Init() tea.Cmd

	// Update handles one message and returns the replacement screen
	// plus any follow-up command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen body; header and footer belong to the
	// app shell.
	View(width, height int) string

	// Title labels the screen in the header bar.
	Title() string
}

// KeyHintProvider lets a screen publish its own footer key hints in
// place of the defaults.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
