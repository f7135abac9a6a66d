package session

import "fmt"

// Mode is the session variant. It is an explicit tagged variant rather
// than a string prefix: behavior differences (answer locking, timing,
// review-set sourcing) derive from it through capability methods.
type Mode int

const (
	// ModePractice draws random questions and reveals correctness plus
	// explanation immediately after each answer.
	ModePractice Mode = iota

	// ModePracticeIncorrect replays questions the learner has ever
	// missed in practice.
	ModePracticeIncorrect

	// ModePracticeBookmarked replays the learner's bookmarked questions.
	ModePracticeBookmarked

	// ModeExam runs a timed, domain-weighted mock exam. Answers stay
	// changeable until submission; no feedback until the end.
	ModeExam
)

var modeNames = map[Mode]string{
	ModePractice:           "practice",
	ModePracticeIncorrect:  "practice-incorrect",
	ModePracticeBookmarked: "practice-bookmarked",
	ModeExam:               "exam",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// IsPractice reports whether the mode belongs to the practice family
// (immediate feedback, missed-question tracking).
func (m Mode) IsPractice() bool {
	return m != ModeExam
}

// LocksAnswers reports whether an answer becomes final the moment it is
// given. Practice reveals the solution on answer, so re-answering is
// rejected; exam answers stay open until submission.
func (m Mode) LocksAnswers() bool {
	return m.IsPractice()
}

// Timed reports whether the session carries a submission deadline.
func (m Mode) Timed() bool {
	return m == ModeExam
}

// MarshalText persists the mode as its stable string name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText restores a mode from its string name. Unknown names
// fall back to plain practice so old stored history stays readable.
func (m *Mode) UnmarshalText(text []byte) error {
	s := string(text)
	for mode, name := range modeNames {
		if name == s {
			*m = mode
			return nil
		}
	}
	*m = ModePractice
	return nil
}
