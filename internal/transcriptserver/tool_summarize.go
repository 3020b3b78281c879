package transcriptserver

import (
	"context"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSummarize(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_summarize",
		Description: "Summarize a YouTube video from its transcript. Pass a video ID/URL to fetch the transcript, or pass transcript text directly. Returns a markdown summary with overview, key points, insights and topics.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.SummarizeInput) (*mcp.CallToolResult, engine.SummarizeOutput, error) {
		if err := limiters.Allow("youtube_summarize"); err != nil {
			return nil, engine.SummarizeOutput{}, err
		}
		out, err := handleSummarize(ctx, input)
		if err != nil {
			return nil, engine.SummarizeOutput{}, err
		}
		return nil, out, nil
	})
}

func handleSummarize(ctx context.Context, input engine.SummarizeInput) (engine.SummarizeOutput, error) {
	tr, err := toolutil.ResolveTranscript(ctx, input.Video, input.Language, input.Transcript)
	if err != nil {
		return engine.SummarizeOutput{}, err
	}
	var summary string
	err = engine.TrackOperation(ctx, "youtube_summarize", 45*time.Second, func(ctx context.Context) error {
		var err error
		summary, err = engine.SummarizeTranscript(ctx, tr.Text)
		return err
	})
	if err != nil {
		return engine.SummarizeOutput{}, err
	}
	return engine.SummarizeOutput{VideoID: tr.VideoID, Summary: summary, TrackInfo: tr.Info}, nil
}
