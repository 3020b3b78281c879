package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests  atomic.Int64
	TranscriptSuccesses atomic.Int64
	TranscriptFailures  atomic.Int64
	TranscriptCancelled atomic.Int64
	PlayerWins          atomic.Int64
	LibraryWins         atomic.Int64
	DirectURLWins       atomic.Int64
	SearchRequests      atomic.Int64
	LLMCalls            atomic.Int64
	LLMErrors           atomic.Int64
	RateLimited         atomic.Int64
}

var metricKeys = []string{
	"transcript_requests", "transcript_successes", "transcript_failures", "transcript_cancelled",
	"strategy_player_wins", "strategy_library_wins", "strategy_direct_url_wins",
	"search_requests",
	"llm_calls", "llm_errors",
	"rate_limited",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"transcript_requests":      metrics.TranscriptRequests.Load(),
		"transcript_successes":     metrics.TranscriptSuccesses.Load(),
		"transcript_failures":      metrics.TranscriptFailures.Load(),
		"transcript_cancelled":     metrics.TranscriptCancelled.Load(),
		"strategy_player_wins":     metrics.PlayerWins.Load(),
		"strategy_library_wins":    metrics.LibraryWins.Load(),
		"strategy_direct_url_wins": metrics.DirectURLWins.Load(),
		"search_requests":          metrics.SearchRequests.Load(),
		"llm_calls":                metrics.LLMCalls.Load(),
		"llm_errors":               metrics.LLMErrors.Load(),
		"rate_limited":             metrics.RateLimited.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// recordTranscript observes every finished extraction.
func recordTranscript(res *youtube.TranscriptResult, err error) {
	metrics.TranscriptRequests.Add(1)
	switch {
	case err == nil:
		metrics.TranscriptSuccesses.Add(1)
		switch res.TrackInfo.ExtractedWith {
		case youtube.StrategyPlayer:
			metrics.PlayerWins.Add(1)
		case youtube.StrategyLibrary:
			metrics.LibraryWins.Add(1)
		case youtube.StrategyDirectURL:
			metrics.DirectURLWins.Add(1)
		}
	case errors.Is(err, youtube.ErrAllStrategiesFailed):
		metrics.TranscriptFailures.Add(1)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		metrics.TranscriptCancelled.Add(1)
	default:
		metrics.TranscriptFailures.Add(1)
	}
}

func IncrSearchRequests() { metrics.SearchRequests.Add(1) }
func IncrRateLimited()    { metrics.RateLimited.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, threshold time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
