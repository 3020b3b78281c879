// Package toolutil provides shared helper functions for go_transcript MCP tools.
package toolutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a tool call exceeds its token bucket.
var ErrRateLimited = errors.New("rate limit exceeded, try again shortly")

// Limiters holds one token bucket per tool name. A zero limit disables limiting.
type Limiters struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*rate.Limiter
}

// NewLimiters returns per-tool limiters allowing perSecond calls with burst.
func NewLimiters(perSecond float64, burst int) *Limiters {
	if burst <= 0 {
		burst = 1
	}
	return &Limiters{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Allow takes a token for tool or returns ErrRateLimited. Excess calls are
// rejected immediately, never queued.
func (l *Limiters) Allow(tool string) error {
	if l == nil || l.limit <= 0 {
		return nil
	}
	l.mu.Lock()
	b, ok := l.buckets[tool]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[tool] = b
	}
	l.mu.Unlock()

	if !b.Allow() {
		engine.IncrRateLimited()
		slog.Warn("tool rate limited", slog.String("tool", tool))
		return fmt.Errorf("%s: %w", tool, ErrRateLimited)
	}
	return nil
}

// Transcript is a resolved transcript: either fetched or supplied by the caller.
type Transcript struct {
	VideoID string
	Text    string
	Info    *youtube.TrackInfo
}

// ResolveTranscript returns the caller's transcript text when given, otherwise
// fetches video through the engine's extractor.
func ResolveTranscript(ctx context.Context, video, lang, provided string) (Transcript, error) {
	if text := strings.TrimSpace(provided); text != "" {
		id := ""
		if strings.TrimSpace(video) != "" {
			id = youtube.NormalizeVideoID(video)
		}
		return Transcript{VideoID: id, Text: text}, nil
	}
	if strings.TrimSpace(video) == "" {
		return Transcript{}, errors.New("video or transcript is required")
	}
	if engine.Cfg.Transcripts == nil {
		return Transcript{}, errors.New("transcript extractor is not configured")
	}
	res, err := engine.Cfg.Transcripts.GetTranscript(ctx, video, engine.NormLang(lang))
	if err != nil {
		return Transcript{}, err
	}
	info := res.TrackInfo
	return Transcript{VideoID: res.VideoID, Text: res.PlainText, Info: &info}, nil
}
