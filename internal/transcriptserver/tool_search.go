package transcriptserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerSearch(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_search",
		Description: "Search YouTube for videos. Uses the YouTube Data API when a key is configured (rotating to a fallback key on quota errors), otherwise scrapes the results page. Returns video IDs, titles, channels and URLs ready for youtube_transcript.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.SearchInput) (*mcp.CallToolResult, engine.SearchOutput, error) {
		if err := limiters.Allow("youtube_search"); err != nil {
			return nil, engine.SearchOutput{}, err
		}
		out, err := handleSearch(ctx, input)
		if err != nil {
			return nil, engine.SearchOutput{}, err
		}
		return nil, out, nil
	})
}

func handleSearch(ctx context.Context, input engine.SearchInput) (engine.SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return engine.SearchOutput{}, errors.New("query is required")
	}
	if engine.Cfg.Searcher == nil {
		return engine.SearchOutput{}, errors.New("search is not configured")
	}
	engine.IncrSearchRequests()

	videos, err := engine.Cfg.Searcher.Search(ctx, query, input.Language, input.Limit)
	if err != nil {
		slog.Warn("youtube_search error", slog.Any("error", err))
		return engine.SearchOutput{}, fmt.Errorf("youtube search failed: %w", err)
	}
	if videos == nil {
		videos = []youtube.Video{}
	}
	return engine.SearchOutput{Query: query, Videos: videos}, nil
}
