// Package home is the top-level menu: it assembles question sets for
// each study mode and dispatches to the other screens.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"auditprep/internal/bank"
	"auditprep/internal/config"
	"auditprep/internal/perf"
	"auditprep/internal/router"
	"auditprep/internal/screen"
	"auditprep/internal/screens/history"
	"auditprep/internal/screens/quiz"
	"auditprep/internal/screens/settings"
	"auditprep/internal/screens/stats"
	"auditprep/internal/selection"
	"auditprep/internal/session"
	"auditprep/internal/store"
	"auditprep/internal/ui/components"
	"auditprep/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu    components.Menu
	catalog bank.Catalog
	rec     *perf.Recorder
	sel     *selection.Selector
	cfg     config.Config
	kv      *store.KV
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. Modes without an available question
// pool are shown disabled.
func New(catalog bank.Catalog, rec *perf.Recorder, sel *selection.Selector, cfg config.Config, kv *store.KV) *HomeScreen {
	h := &HomeScreen{
		catalog: catalog,
		rec:     rec,
		sel:     sel,
		cfg:     cfg,
		kv:      kv,
	}

	missed := len(rec.MissedSet())
	bookmarked := len(rec.BookmarkSet())

	items := []components.MenuItem{
		{Label: "PRACTICE", Action: h.startPractice},
		{
			Label:    "REVIEW MISSED",
			Hint:     countHint(missed),
			Disabled: missed == 0,
			Action: func() tea.Cmd {
				return h.startFixedSet(session.ModePracticeIncorrect, rec.MissedSet())
			},
		},
		{
			Label:    "BOOKMARKED",
			Hint:     countHint(bookmarked),
			Disabled: bookmarked == 0,
			Action: func() tea.Cmd {
				return h.startFixedSet(session.ModePracticeBookmarked, rec.BookmarkSet())
			},
		},
		{Label: "MOCK EXAM", Action: h.startExam},
		{Label: "STATISTICS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(rec, kv)}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(rec)}
			}
		}},
		{Label: "SETTINGS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(kv, cfg)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("AuditPrep"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("CISA exam preparation"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.statsLine()))
	b.WriteString("\n\n")

	if h.errMsg != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render(h.errMsg)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	return b.String()
}

func (h *HomeScreen) statsLine() string {
	acc := "no sessions yet"
	if a, ok := h.rec.OverallAccuracy(); ok {
		acc = fmt.Sprintf("%d sessions  ·  %.0f%% accuracy  ·  %d questions in bank",
			h.rec.Sessions(), a*100, len(h.catalog))
	} else {
		acc = fmt.Sprintf("%d questions in bank", len(h.catalog))
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(acc)
}

// startPractice assembles a practice set, adaptively when the setting
// is on, and pushes the quiz screen.
func (h *HomeScreen) startPractice() tea.Cmd {
	adaptive := h.cfg.Adaptive
	h.kv.Get(context.Background(), store.KeyAdaptiveMode, &adaptive)

	var qs []bank.Question
	if adaptive {
		qs = h.sel.Adaptive(h.catalog, h.cfg.Domain, h.cfg.QuestionCount, h.rec)
		h.sel.Shuffle(qs)
	} else {
		qs = h.sel.Random(h.catalog, h.cfg.Domain, h.cfg.QuestionCount)
	}
	if len(qs) == 0 {
		h.errMsg = "no questions available for this domain"
		return nil
	}

	return h.pushQuiz(qs, session.ModePractice, 0, "")
}

func (h *HomeScreen) startFixedSet(mode session.Mode, ids map[int]bool) tea.Cmd {
	qs := h.sel.FixedSet(h.catalog, ids)
	if len(qs) == 0 {
		h.errMsg = "nothing to review"
		return nil
	}
	h.sel.Shuffle(qs)
	return h.pushQuiz(qs, mode, 0, "")
}

func (h *HomeScreen) startExam() tea.Cmd {
	exam := h.sel.ExamSet(h.catalog, h.cfg.ExamSize, selection.DefaultExamWeights())
	if len(exam.Questions) == 0 {
		h.errMsg = "question bank is empty"
		return nil
	}

	note := ""
	if exam.Partial() {
		note = fmt.Sprintf("bank has only %d of %d requested questions", len(exam.Questions), exam.Requested)
	}

	return h.pushQuiz(exam.Questions, session.ModeExam, len(exam.Questions), note)
}

func (h *HomeScreen) pushQuiz(qs []bank.Question, mode session.Mode, examCount int, note string) tea.Cmd {
	cfg := session.Config{Mode: mode, Questions: qs}
	if mode == session.ModeExam {
		// The time budget follows the drawn count, not the configured
		// size, so a partial exam keeps the same per-question pacing.
		cfg.ExamDuration = config.ExamDuration(examCount)
	}
	return func() tea.Msg {
		qscreen, err := quiz.New(cfg, h.rec, note)
		if err != nil {
			return nil
		}
		return router.PushScreenMsg{Screen: qscreen}
	}
}

func countHint(n int) string {
	if n == 0 {
		return "(none)"
	}
	return fmt.Sprintf("(%d)", n)
}
