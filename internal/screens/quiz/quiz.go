// Package quiz drives an active question run: answering, navigation,
// bookmarking, the exam countdown, and the handoff to the summary.
package quiz

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"auditprep/internal/perf"
	"auditprep/internal/router"
	"auditprep/internal/screen"
	"auditprep/internal/screens/summary"
	"auditprep/internal/session"
	"auditprep/internal/ui/components"
	"auditprep/internal/ui/layout"
)

// QuizScreen implements screen.Screen for an in-progress session.
type QuizScreen struct {
	sess *session.Session
	rec  *perf.Recorder
	note string

	opts        components.OptionList
	bookmarked  bool
	confirmQuit bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates and starts a quiz for the given session config. note is
// an optional banner line, e.g. when the bank could not fill a full
// exam blueprint.
func New(cfg session.Config, rec *perf.Recorder, note string) (*QuizScreen, error) {
	s, err := session.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Start(); err != nil {
		return nil, err
	}
	q := &QuizScreen{sess: s, rec: rec, note: note}
	q.syncOptions()
	return q, nil
}

func (q *QuizScreen) Init() tea.Cmd {
	if q.sess.Mode().Timed() {
		return tickCmd()
	}
	return nil
}

func (q *QuizScreen) Title() string {
	if q.sess.Mode() == session.ModeExam {
		return "Mock Exam"
	}
	return "Practice"
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if q.showingFeedback() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "B", Description: "Bookmark"},
			{Key: "Esc", Description: "End"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Answer"},
	}
	if q.sess.Cursor() > 0 {
		hints = append(hints, layout.KeyHint{Key: "←", Description: "Previous"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "B", Description: "Bookmark"},
		layout.KeyHint{Key: "Esc", Description: "End"},
	)
	return hints
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if res := q.sess.Tick(); res != nil {
			return q, q.finishCmd(res)
		}
		if q.sess.Phase() == session.PhaseInProgress {
			return q, tickCmd()
		}
		return q, nil

	case tea.KeyMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if q.errMsg != "" {
		return q, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if q.confirmQuit {
		switch key {
		case "y", "Y":
			q.confirmQuit = false
			return q, q.finishCmd(q.sess.Finish())
		case "n", "N", "esc":
			q.confirmQuit = false
		}
		return q, nil
	}

	switch key {
	case "esc":
		q.confirmQuit = true
		return q, nil
	case "b":
		return q, q.toggleBookmark()
	}

	// Practice feedback overlay: answer revealed, waiting to move on.
	if q.showingFeedback() {
		switch key {
		case "enter", "n", "right", " ":
			return q.advance()
		case "p", "left":
			q.retreat()
		}
		return q, nil
	}

	switch key {
	case "enter":
		return q.submit()
	case "n", "right":
		return q.advance()
	case "p", "left":
		q.retreat()
		return q, nil
	}

	var cmd tea.Cmd
	q.opts, cmd = q.opts.Update(msg)
	return q, cmd
}

// submit records the highlighted option for the current question. In
// exam mode it advances immediately; practice stays to show feedback.
func (q *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	cur := q.sess.Current()
	if err := q.sess.Answer(cur.ID, q.opts.Selected); err != nil {
		return q, nil
	}
	q.opts.Choose()

	if q.sess.Mode() == session.ModeExam {
		return q.advance()
	}
	return q, nil
}

func (q *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	res, finished := q.sess.Advance()
	if finished {
		return q, q.finishCmd(res)
	}
	q.syncOptions()
	return q, nil
}

func (q *QuizScreen) retreat() {
	q.sess.Retreat()
	q.syncOptions()
}

func (q *QuizScreen) toggleBookmark() tea.Cmd {
	cur := q.sess.Current()
	on, err := q.rec.ToggleBookmark(context.Background(), cur.ID)
	if err != nil {
		return nil
	}
	q.bookmarked = on
	return nil
}

// finishCmd records the result and swaps in the summary screen.
func (q *QuizScreen) finishCmd(res *session.Result) tea.Cmd {
	rec := q.rec
	return func() tea.Msg {
		if err := rec.Record(context.Background(), res); err != nil {
			return router.ReplaceScreenMsg{Screen: summary.NewWithError(res, err)}
		}
		return router.ReplaceScreenMsg{Screen: summary.New(res)}
	}
}

// syncOptions rebuilds the option list for the question under the
// cursor, restoring any recorded answer.
func (q *QuizScreen) syncOptions() {
	cur := q.sess.Current()
	q.opts = components.NewOptionList(cur.Options, cur.CorrectIndex, q.sess.Mode().IsPractice())
	if chosen, ok := q.sess.Chosen(cur.ID); ok {
		q.opts.SetChosen(chosen)
	}
	q.bookmarked = q.rec.Bookmarked(cur.ID)
}

// showingFeedback reports whether the practice reveal for the current
// question is on screen.
func (q *QuizScreen) showingFeedback() bool {
	return q.opts.Submitted && q.opts.Reveal
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
