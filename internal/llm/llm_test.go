package llm

import (
	"strings"
	"testing"

	"auditprep/internal/bank"
)

func TestBuildExplainPrompt(t *testing.T) {
	q := bank.Question{
		ID:           7,
		Text:         "Which control is preventive?",
		Options:      []string{"Audit log review", "Input validation", "Incident response"},
		CorrectIndex: 1,
		Domain:       bank.DomainProtection,
		Explanation:  "Input validation stops bad data before it enters.",
	}

	prompt := buildExplainPrompt(q)

	for _, want := range []string{
		"Which control is preventive?",
		"A. Audit log review",
		"B. Input validation",
		"Correct answer: B",
		"Input validation stops bad data",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildExplainPromptOmitsEmptyExplanation(t *testing.T) {
	q := bank.Question{
		ID:           1,
		Text:         "q",
		Options:      []string{"a", "b"},
		CorrectIndex: 0,
		Domain:       bank.DomainAuditProcess,
	}
	if strings.Contains(buildExplainPrompt(q), "Bank explanation") {
		t.Error("prompt includes explanation line for question without one")
	}
}
