package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "  ## Summary\ntext  ", "## Summary\ntext"},
		{"markdown fence", "```markdown\n## Summary\n```", "## Summary"},
		{"md fence", "```md\nhi\n```", "hi"},
		{"bare fence", "```\nhi\n```", "hi"},
		{"unclosed fence", "```markdown\nhi", "hi"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.raw); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func withComplete(t *testing.T, c Config, fn CompleteFunc) {
	t.Helper()
	old := cfg
	c.Complete = fn
	Init(c)
	t.Cleanup(func() { cfg = old })
}

func TestSummarizeTranscript(t *testing.T) {
	var got string
	withComplete(t, Config{SummaryInputChars: 10}, func(_ context.Context, prompt string) (string, error) {
		got = prompt
		return "```markdown\n**Key Points**\n```", nil
	})

	out, err := SummarizeTranscript(context.Background(), "abcdefghijklmnopqrstuvwxyz")
	if err != nil {
		t.Fatalf("SummarizeTranscript: %v", err)
	}
	if out != "**Key Points**" {
		t.Errorf("summary = %q", out)
	}
	if !strings.Contains(got, "Transcript:\nabcdefg") || !strings.HasSuffix(got, "...") {
		t.Errorf("prompt not truncated: %q", got)
	}
	if strings.Contains(got, "xyz") {
		t.Error("prompt contains text past the input limit")
	}
}

func TestSummarizeTranscript_Errors(t *testing.T) {
	boom := errors.New("upstream 500")
	withComplete(t, Config{}, func(context.Context, string) (string, error) { return "", boom })

	if _, err := SummarizeTranscript(context.Background(), "  "); err == nil {
		t.Error("expected error for empty transcript")
	}
	_, err := SummarizeTranscript(context.Background(), "text")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if !strings.HasPrefix(err.Error(), "summary generation failed") {
		t.Errorf("err = %q", err)
	}
}

func TestAnswerQuestion(t *testing.T) {
	var got string
	withComplete(t, Config{}, func(_ context.Context, prompt string) (string, error) {
		got = prompt
		return notCoveredAnswer, nil
	})

	out, err := AnswerQuestion(context.Background(), "a talk about Go", "  what about Rust? ")
	if err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	if out != notCoveredAnswer {
		t.Errorf("answer = %q", out)
	}
	if !strings.Contains(got, "Video Transcript:\na talk about Go") || !strings.Contains(got, "User Question: what about Rust?") {
		t.Errorf("prompt = %q", got)
	}
}

func TestAnswerQuestion_EmptyResponse(t *testing.T) {
	withComplete(t, Config{}, func(context.Context, string) (string, error) { return "```\n```", nil })

	_, err := AnswerQuestion(context.Background(), "text", "q")
	if !errors.Is(err, ErrEmptyLLMResponse) {
		t.Errorf("err = %v, want ErrEmptyLLMResponse", err)
	}
	if _, err := AnswerQuestion(context.Background(), "text", " "); err == nil {
		t.Error("expected error for empty question")
	}
}

func TestCallLLM_NotConfigured(t *testing.T) {
	withComplete(t, Config{}, nil)
	if _, err := CallLLM(context.Background(), "p"); !errors.Is(err, ErrLLMNotConfigured) {
		t.Errorf("err = %v, want ErrLLMNotConfigured", err)
	}
}
