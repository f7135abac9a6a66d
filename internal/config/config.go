// Package config resolves runtime settings from flags, environment,
// and config file (via viper) into one validated struct.
package config

import (
	"math"
	"time"

	"github.com/spf13/viper"

	"auditprep/internal/bank"
)

// Defaults applied when a setting is absent everywhere.
const (
	DefaultQuestionCount = 10
	DefaultExamSize      = 150

	DefaultLLMBaseURL = "http://localhost:11434/v1"
	DefaultLLMModel   = "llama3.2"
)

// fullExamMinutes is the time budget of a full-length 150 question
// exam. Shorter forms scale proportionally.
const (
	fullExamSize    = 150
	fullExamMinutes = 240
)

// ExamSizes are the accepted exam lengths.
var ExamSizes = []int{50, 100, 150}

// Config is the resolved runtime configuration.
type Config struct {
	Domain        bank.Domain
	QuestionCount int
	ExamSize      int
	Adaptive      bool

	DBPath   string
	BankPath string

	LLMBaseURL string
	LLMKey     string
	LLMModel   string
}

// FromViper builds a Config from a bound viper instance, normalizing
// the domain and snapping out-of-set values back to defaults.
func FromViper(v *viper.Viper) Config {
	cfg := Config{
		Domain:        normalizeDomain(v.GetString("domain")),
		QuestionCount: v.GetInt("questions"),
		ExamSize:      v.GetInt("exam-size"),
		Adaptive:      v.GetBool("adaptive"),
		DBPath:        v.GetString("db"),
		BankPath:      v.GetString("bank"),
		LLMBaseURL:    v.GetString("llm-url"),
		LLMKey:        v.GetString("llm-key"),
		LLMModel:      v.GetString("llm-model"),
	}
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultQuestionCount
	}
	if !validExamSize(cfg.ExamSize) {
		cfg.ExamSize = DefaultExamSize
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = DefaultLLMBaseURL
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = DefaultLLMModel
	}
	return cfg
}

// ExamDuration scales the full-length exam time budget down to the
// requested question count, rounded to the nearest minute.
func ExamDuration(count int) time.Duration {
	minutes := math.Round(float64(count) / fullExamSize * fullExamMinutes)
	return time.Duration(minutes) * time.Minute
}

func normalizeDomain(raw string) bank.Domain {
	if raw == "" || raw == string(bank.DomainAll) {
		return bank.DomainAll
	}
	return bank.NormalizeDomain(raw)
}

func validExamSize(n int) bool {
	for _, s := range ExamSizes {
		if n == s {
			return true
		}
	}
	return false
}
