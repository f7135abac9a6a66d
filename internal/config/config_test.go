package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditprep/internal/bank"
)

func TestExamDuration(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  time.Duration
	}{
		{"full length", 150, 240 * time.Minute},
		{"two thirds", 100, 160 * time.Minute},
		{"one third", 50, 80 * time.Minute},
		{"odd count rounds", 75, 120 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExamDuration(tt.count))
		})
	}
}

func TestFromViperDefaults(t *testing.T) {
	cfg := FromViper(viper.New())

	assert.Equal(t, bank.DomainAll, cfg.Domain)
	assert.Equal(t, DefaultQuestionCount, cfg.QuestionCount)
	assert.Equal(t, DefaultExamSize, cfg.ExamSize)
	assert.Equal(t, DefaultLLMBaseURL, cfg.LLMBaseURL)
	assert.Equal(t, DefaultLLMModel, cfg.LLMModel)
	assert.False(t, cfg.Adaptive)
}

func TestFromViperFallsBackToLLMDefaults(t *testing.T) {
	v := viper.New()
	v.Set("llm-url", "")
	v.Set("llm-model", "")

	cfg := FromViper(v)
	assert.Equal(t, DefaultLLMBaseURL, cfg.LLMBaseURL)
	assert.Equal(t, DefaultLLMModel, cfg.LLMModel)
}

func TestFromViperNormalizesDomain(t *testing.T) {
	v := viper.New()
	v.Set("domain", "  governance and management of IT ")

	cfg := FromViper(v)
	require.Equal(t, bank.DomainGovernance, cfg.Domain)
}

func TestFromViperSnapsInvalidExamSize(t *testing.T) {
	v := viper.New()
	v.Set("exam-size", 60)
	assert.Equal(t, DefaultExamSize, FromViper(v).ExamSize)

	v.Set("exam-size", 50)
	assert.Equal(t, 50, FromViper(v).ExamSize)
}
