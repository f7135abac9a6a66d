// Package llm provides the study assistant: an OpenAI-compatible
// client that expands a question's packaged explanation into a fuller
// walkthrough on demand.
package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"auditprep/internal/bank"
)

const explainSystemPrompt = `You are a tutor helping a candidate prepare for an information
systems audit certification exam. Given a multiple-choice question, its
answer options, the correct answer, and the bank's short explanation,
produce a concise walkthrough: why the correct option is right, why
each distractor is wrong, and the underlying concept being tested.
Answer in plain prose, no markdown headings.`

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a client against baseURL. Any OpenAI-compatible endpoint
// works, including a local Ollama server.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// Explain asks the model for a walkthrough of one question.
func (c *Client) Explain(ctx context.Context, q bank.Question) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: explainSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildExplainPrompt(q)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Ping verifies the endpoint is reachable and the model responds.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "ping"}},
		MaxTokens: 1,
	})
	if err != nil {
		return fmt.Errorf("LLM health check: %w", err)
	}
	return nil
}

func buildExplainPrompt(q bank.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Domain: %s\n", q.Domain)
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%s. %s\n", q.OptionLetter(i), opt)
	}
	fmt.Fprintf(&b, "Correct answer: %s\n", q.CorrectLetter())
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Bank explanation: %s\n", q.Explanation)
	}
	return b.String()
}
