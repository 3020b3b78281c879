package transcriptserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	formatBoth = "both"
	formatText = "text"
)

func registerTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Get the transcript of a YouTube video. Accepts a video ID or any watch/youtu.be/embed/shorts URL. Tries the player API under several client identities, a client library, then caption URLs scraped from the watch page. Returns plain text plus timed entries and info about the caption track used.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, engine.TranscriptOutput, error) {
		if err := limiters.Allow("youtube_transcript"); err != nil {
			return nil, engine.TranscriptOutput{}, err
		}
		out, err := handleTranscript(ctx, input)
		if err != nil {
			return nil, engine.TranscriptOutput{}, err
		}
		return nil, out, nil
	})
}

func handleTranscript(ctx context.Context, input engine.TranscriptInput) (engine.TranscriptOutput, error) {
	if strings.TrimSpace(input.Video) == "" {
		return engine.TranscriptOutput{}, errors.New("video is required")
	}
	format := strings.ToLower(strings.TrimSpace(input.Format))
	switch format {
	case "":
		format = formatBoth
	case formatBoth, formatText:
	default:
		return engine.TranscriptOutput{}, fmt.Errorf("unknown format %q (use both or text)", input.Format)
	}
	if engine.Cfg.Transcripts == nil {
		return engine.TranscriptOutput{}, errors.New("transcript extractor is not configured")
	}

	var res *youtube.TranscriptResult
	err := engine.TrackOperation(ctx, "youtube_transcript", 30*time.Second, func(ctx context.Context) error {
		var err error
		res, err = engine.Cfg.Transcripts.GetTranscript(ctx, input.Video, engine.NormLang(input.Language))
		return err
	})
	if err != nil {
		return engine.TranscriptOutput{}, err
	}

	text, truncated := engine.TruncateTranscript(res.PlainText, input.MaxLength)
	out := engine.TranscriptOutput{
		VideoID:    res.VideoID,
		Transcript: text,
		Length:     utf8.RuneCountInString(res.PlainText),
		Truncated:  truncated,
		TrackInfo:  res.TrackInfo,
	}
	if format == formatBoth {
		out.Structured = res.Structured
	}
	return out, nil
}
