package transcriptserver

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerAsk(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_ask",
		Description: "Answer a question about a YouTube video using only its transcript. Pass a video ID/URL or transcript text plus the question. Says so when the video does not cover the answer.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.AskInput) (*mcp.CallToolResult, engine.AskOutput, error) {
		if err := limiters.Allow("youtube_ask"); err != nil {
			return nil, engine.AskOutput{}, err
		}
		out, err := handleAsk(ctx, input)
		if err != nil {
			return nil, engine.AskOutput{}, err
		}
		return nil, out, nil
	})
}

func handleAsk(ctx context.Context, input engine.AskInput) (engine.AskOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return engine.AskOutput{}, errors.New("question is required")
	}
	tr, err := toolutil.ResolveTranscript(ctx, input.Video, input.Language, input.Transcript)
	if err != nil {
		return engine.AskOutput{}, err
	}
	var answer string
	err = engine.TrackOperation(ctx, "youtube_ask", 45*time.Second, func(ctx context.Context) error {
		var err error
		answer, err = engine.AnswerQuestion(ctx, tr.Text, question)
		return err
	})
	if err != nil {
		return engine.AskOutput{}, err
	}
	return engine.AskOutput{VideoID: tr.VideoID, Question: question, Answer: answer}, nil
}
