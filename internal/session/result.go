package session

import (
	"math"
	"time"

	"auditprep/internal/bank"
)

// DomainScore is the correct/total tally for one domain within a result.
type DomainScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Outcome records how one question of the session went. Unanswered
// questions appear with Answered=false and count as wrong.
type Outcome struct {
	QuestionID int         `json:"question_id"`
	Domain     bank.Domain `json:"domain"`
	Chosen     int         `json:"chosen"`
	Answered   bool        `json:"answered"`
	Correct    bool        `json:"correct"`
	Seconds    int         `json:"seconds"`
}

// Result is the immutable outcome of a completed session.
type Result struct {
	ID             string                      `json:"id"`
	Timestamp      time.Time                   `json:"timestamp"`
	Mode           Mode                        `json:"mode"`
	TotalQuestions int                         `json:"total_questions"`
	CorrectCount   int                         `json:"correct_count"`
	Percentage     int                         `json:"percentage"`
	Domains        map[bank.Domain]DomainScore `json:"domains"`
	ElapsedMinutes int                         `json:"elapsed_minutes"`
	Outcomes       []Outcome                   `json:"outcomes"`
}

// ScorePercent computes round(100*correct/total), 0 when total is 0.
func ScorePercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// MissedIDs returns the ids of questions answered incorrectly or left
// unanswered, in question-list order.
func (r *Result) MissedIDs() []int {
	var ids []int
	for _, o := range r.Outcomes {
		if !o.Correct {
			ids = append(ids, o.QuestionID)
		}
	}
	return ids
}
