// Package session owns the lifecycle of one in-progress question run:
// cursor, answers, per-question timing, completion, and scoring. A
// session is single-threaded; all transitions happen in response to
// discrete user events or the one-second exam tick.
package session

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"auditprep/internal/bank"
)

// Rejection signals. These are caller-visible conditions, not crashes:
// the hosting UI decides how to present them.
var (
	ErrEmptyQuestionList = errors.New("session: empty question list")
	ErrAlreadyStarted    = errors.New("session: already started")
	ErrNotInProgress     = errors.New("session: not in progress")
	ErrAnswerLocked      = errors.New("session: answer already locked")
	ErrQuestionNotActive = errors.New("session: question not active")
	ErrOptionOutOfRange  = errors.New("session: option index out of range")
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseCompleted
)

// Clock supplies the current time. Injectable for deadline tests.
type Clock func() time.Time

// Config describes a session to create.
type Config struct {
	Mode      Mode
	Questions []bank.Question

	// ExamDuration is the time budget for ModeExam; ignored otherwise.
	ExamDuration time.Duration

	// DisallowRetreat disables backward navigation. Only meaningful for
	// exam mode; practice always allows revisiting.
	DisallowRetreat bool

	// Clock defaults to time.Now.
	Clock Clock
}

// Session is the mutable state of one run. Create with New, drive with
// Start/Answer/Advance/Retreat/Tick, and read the Result from Finish.
type Session struct {
	mode      Mode
	questions []bank.Question
	clock     Clock

	phase      Phase
	cursor     int
	maxVisited int
	answers    map[int]int
	elapsed    map[int]time.Duration

	startedAt time.Time
	deadline  time.Time
	viewedAt  time.Time

	examDuration time.Duration
	allowRetreat bool

	result *Result
}

// New creates a session in PhaseNotStarted. An empty question list is
// rejected before any state exists.
func New(cfg Config) (*Session, error) {
	if len(cfg.Questions) == 0 {
		return nil, ErrEmptyQuestionList
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	allowRetreat := true
	if cfg.Mode == ModeExam && cfg.DisallowRetreat {
		allowRetreat = false
	}
	return &Session{
		mode:         cfg.Mode,
		questions:    cfg.Questions,
		clock:        clock,
		examDuration: cfg.ExamDuration,
		allowRetreat: allowRetreat,
		answers:      make(map[int]int),
		elapsed:      make(map[int]time.Duration),
	}, nil
}

// Start transitions NotStarted -> InProgress, stamping the start time
// and, for exam mode, the submission deadline.
func (s *Session) Start() error {
	if s.phase != PhaseNotStarted {
		return ErrAlreadyStarted
	}
	now := s.clock()
	s.phase = PhaseInProgress
	s.startedAt = now
	s.viewedAt = now
	if s.mode.Timed() {
		s.deadline = now.Add(s.examDuration)
	}
	return nil
}

func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Mode() Mode   { return s.mode }
func (s *Session) Len() int     { return len(s.questions) }
func (s *Session) Cursor() int  { return s.cursor }

// Questions returns the session's question list, fixed at creation.
func (s *Session) Questions() []bank.Question { return s.questions }

// Current returns the question under the cursor.
func (s *Session) Current() bank.Question {
	return s.questions[s.cursor]
}

// Chosen returns the recorded answer for a question id.
func (s *Session) Chosen(questionID int) (int, bool) {
	idx, ok := s.answers[questionID]
	return idx, ok
}

// AnsweredCount returns how many questions have an answer recorded.
func (s *Session) AnsweredCount() int { return len(s.answers) }

// Remaining returns the time left before the exam deadline; zero for
// untimed sessions or once the deadline has passed.
func (s *Session) Remaining() time.Duration {
	if !s.mode.Timed() || s.phase != PhaseInProgress {
		return 0
	}
	rem := s.deadline.Sub(s.clock())
	if rem < 0 {
		return 0
	}
	return rem
}

// Answer records optionIndex for questionID. Only the current question
// or (when backward navigation is allowed) a previously-visited one is
// answerable. Practice modes lock the first answer; exam answers may be
// changed until submission. Rejections leave state untouched.
func (s *Session) Answer(questionID, optionIndex int) error {
	if s.phase != PhaseInProgress {
		return ErrNotInProgress
	}

	pos := -1
	for i := 0; i <= s.maxVisited && i < len(s.questions); i++ {
		if s.questions[i].ID == questionID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return ErrQuestionNotActive
	}

	q := s.questions[pos]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return ErrOptionOutOfRange
	}
	if _, answered := s.answers[questionID]; answered && s.mode.LocksAnswers() {
		return ErrAnswerLocked
	}

	if pos == s.cursor {
		s.flushViewTime()
	}
	s.answers[questionID] = optionIndex
	return nil
}

// Advance moves the cursor forward. At the last question it finishes
// the session instead and returns the result with finished=true.
func (s *Session) Advance() (*Result, bool) {
	if s.phase != PhaseInProgress {
		return s.result, s.phase == PhaseCompleted
	}
	if s.cursor >= len(s.questions)-1 {
		return s.Finish(), true
	}
	s.flushViewTime()
	s.cursor++
	if s.cursor > s.maxVisited {
		s.maxVisited = s.cursor
	}
	return nil, false
}

// Retreat moves the cursor back one question, floored at zero. A no-op
// when backward navigation is disabled for this session.
func (s *Session) Retreat() {
	if s.phase != PhaseInProgress || !s.allowRetreat || s.cursor == 0 {
		return
	}
	s.flushViewTime()
	s.cursor--
}

// Tick performs the periodic exam deadline check. When the deadline has
// passed it finishes the session (unanswered questions count as wrong)
// and returns the result; otherwise nil. Safe to call every second.
func (s *Session) Tick() *Result {
	if s.phase != PhaseInProgress || !s.mode.Timed() {
		return nil
	}
	if s.clock().Before(s.deadline) {
		return nil
	}
	return s.Finish()
}

// Finish transitions InProgress -> Completed and computes the result.
// Idempotent: the transition is one-way and repeated calls return the
// already-computed result, so the manual-submit/auto-submit race can
// never double-record.
func (s *Session) Finish() *Result {
	if s.phase == PhaseCompleted {
		return s.result
	}
	if s.phase != PhaseInProgress {
		return nil
	}
	s.flushViewTime()
	s.phase = PhaseCompleted

	now := s.clock()
	res := &Result{
		ID:             uuid.New().String(),
		Timestamp:      now,
		Mode:           s.mode,
		TotalQuestions: len(s.questions),
		Domains:        make(map[bank.Domain]DomainScore),
		ElapsedMinutes: int(math.Round(now.Sub(s.startedAt).Minutes())),
	}

	for _, q := range s.questions {
		chosen, answered := s.answers[q.ID]
		correct := answered && chosen == q.CorrectIndex
		if correct {
			res.CorrectCount++
		}

		ds := res.Domains[q.Domain]
		ds.Total++
		if correct {
			ds.Correct++
		}
		res.Domains[q.Domain] = ds

		if !answered {
			chosen = -1
		}
		res.Outcomes = append(res.Outcomes, Outcome{
			QuestionID: q.ID,
			Domain:     q.Domain,
			Chosen:     chosen,
			Answered:   answered,
			Correct:    correct,
			Seconds:    int(s.elapsed[q.ID].Seconds()),
		})
	}

	res.Percentage = ScorePercent(res.CorrectCount, res.TotalQuestions)
	s.result = res
	return res
}

// Result returns the computed result, nil until Finish has run.
func (s *Session) Result() *Result { return s.result }

// flushViewTime attributes the time since the current question became
// visible to that question, additively across revisits.
func (s *Session) flushViewTime() {
	now := s.clock()
	q := s.questions[s.cursor]
	s.elapsed[q.ID] += now.Sub(s.viewedAt)
	s.viewedAt = now
}
