package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
)

func TestRecordTranscript(t *testing.T) {
	before := GetMetrics()

	recordTranscript(&youtube.TranscriptResult{TrackInfo: youtube.TrackInfo{ExtractedWith: youtube.StrategyLibrary}}, nil)
	recordTranscript(&youtube.TranscriptResult{TrackInfo: youtube.TrackInfo{ExtractedWith: youtube.StrategyDirectURL}}, nil)
	recordTranscript(nil, &youtube.AllStrategiesFailedError{VideoID: "x", Last: youtube.ErrNoCaptionsFound})
	recordTranscript(nil, context.DeadlineExceeded)
	recordTranscript(nil, &youtube.AllStrategiesFailedError{VideoID: "x", Last: context.DeadlineExceeded})

	after := GetMetrics()
	want := map[string]int64{
		"transcript_requests":      5,
		"transcript_successes":     2,
		"transcript_failures":      2,
		"transcript_cancelled":     1,
		"strategy_library_wins":    1,
		"strategy_direct_url_wins": 1,
		"strategy_player_wins":     0,
	}
	for k, d := range want {
		if got := after[k] - before[k]; got != d {
			t.Errorf("%s delta = %d, want %d", k, got, d)
		}
	}
}

func TestFormatMetrics(t *testing.T) {
	out := FormatMetrics()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != len(metricKeys) {
		t.Fatalf("got %d lines, want %d", len(lines), len(metricKeys))
	}
	for i, k := range metricKeys {
		if !strings.HasPrefix(lines[i], k+" ") {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], k)
		}
	}
}

func TestTrackOperation(t *testing.T) {
	boom := errors.New("boom")
	err := TrackOperation(context.Background(), "op", time.Nanosecond, func(context.Context) error {
		time.Sleep(time.Millisecond)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
