package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLLMNotConfigured means no LLM client or completion func was wired.
	ErrLLMNotConfigured = errors.New("LLM is not configured (set LLM_API_KEY)")
	// ErrEmptyLLMResponse means the model answered with nothing.
	ErrEmptyLLMResponse = errors.New("empty response from LLM")
)

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	for _, fence := range []string{"```markdown", "```md", "```"} {
		if strings.HasPrefix(s, fence) {
			s = strings.TrimPrefix(s, fence)
			s = strings.TrimSuffix(strings.TrimSpace(s), "```")
			break
		}
	}
	return strings.TrimSpace(s)
}

// CallLLM sends a prompt through the configured completion func.
func CallLLM(ctx context.Context, prompt string) (string, error) {
	if cfg.Complete == nil {
		return "", ErrLLMNotConfigured
	}
	metrics.LLMCalls.Add(1)
	resp, err := cfg.Complete(ctx, prompt)
	if err != nil {
		metrics.LLMErrors.Add(1)
		return "", err
	}
	out := stripFences(resp)
	if out == "" {
		metrics.LLMErrors.Add(1)
		return "", ErrEmptyLLMResponse
	}
	return out, nil
}

// SummarizeTranscript returns a markdown summary of transcript.
// Input beyond SummaryInputChars is cut and marked with "...".
func SummarizeTranscript(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("transcript is empty")
	}
	text := TruncateRunes(transcript, cfg.SummaryInputChars, "...")
	out, err := CallLLM(ctx, fmt.Sprintf(summaryPrompt, text))
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return out, nil
}

// AnswerQuestion answers question using only transcript as context.
// Input beyond QAInputChars is cut and marked with "...".
func AnswerQuestion(ctx context.Context, transcript, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.New("question is empty")
	}
	if strings.TrimSpace(transcript) == "" {
		return "", errors.New("transcript is empty")
	}
	text := TruncateRunes(transcript, cfg.QAInputChars, "...")
	out, err := CallLLM(ctx, fmt.Sprintf(answerPrompt, text, question))
	if err != nil {
		return "", fmt.Errorf("question answering failed: %w", err)
	}
	return out, nil
}
