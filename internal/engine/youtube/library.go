package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// SessionConfig is one initialization variant for the client library.
type SessionConfig struct {
	Name string
	// VisitorData is sent as the session token when ExplicitVisitorData is set,
	// even if empty.
	VisitorData         string
	ExplicitVisitorData bool
	// DisableSession drops cookies and session headers entirely.
	DisableSession bool
}

// DefaultSessionVariants is the ordered variant table for the library strategy.
var DefaultSessionVariants = []SessionConfig{
	{Name: "default"},
	{Name: "empty-visitor-data", ExplicitVisitorData: true},
	{Name: "session-disabled", DisableSession: true},
}

// Library is a third-party platform client able to open sessions.
type Library interface {
	NewSession(ctx context.Context, cfg SessionConfig) (LibrarySession, error)
}

// LibrarySession fetches video info and downloads caption content.
type LibrarySession interface {
	VideoInfo(ctx context.Context, videoID string) (*LibraryVideo, error)
	Download(ctx context.Context, video *LibraryVideo, track CaptionTrack) ([]CaptionEntry, error)
}

// LibraryVideo is the library's video info reduced to what the strategy needs.
// Native holds the library's own video object for Download.
type LibraryVideo struct {
	Captions       []CaptionTrack
	PlayerCaptions []CaptionTrack
	Native         any
}

var libraryLocators = []func(*LibraryVideo) []CaptionTrack{
	func(v *LibraryVideo) []CaptionTrack { return v.Captions },
	func(v *LibraryVideo) []CaptionTrack { return v.PlayerCaptions },
}

func (v *LibraryVideo) captionTracks() []CaptionTrack {
	for _, locate := range libraryLocators {
		if tracks := locate(v); len(tracks) > 0 {
			return tracks
		}
	}
	return nil
}

// LibraryStrategy retrieves captions through a client library, once per session variant.
type LibraryStrategy struct {
	lib      Library
	variants []SessionConfig
}

// NewLibraryStrategy returns a library strategy; nil variants means DefaultSessionVariants.
func NewLibraryStrategy(lib Library, variants []SessionConfig) *LibraryStrategy {
	if variants == nil {
		variants = DefaultSessionVariants
	}
	return &LibraryStrategy{lib: lib, variants: variants}
}

// Name implements Strategy.
func (s *LibraryStrategy) Name() string { return StrategyLibrary }

// Extract implements Strategy.
func (s *LibraryStrategy) Extract(ctx context.Context, videoID, lang string, rec *Recorder) (*TranscriptResult, error) {
	var last error
	for _, v := range s.variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := s.tryVariant(ctx, v, videoID, lang)
		if err == nil {
			return res, nil
		}
		last = err
		rec.Record(StrategyLibrary, v.Name, err)
		slog.Debug("youtube: library variant failed",
			slog.String("id", videoID), slog.String("variant", v.Name), slog.Any("err", err))
	}
	return nil, noCaptions(StrategyLibrary, last)
}

func (s *LibraryStrategy) tryVariant(ctx context.Context, cfg SessionConfig, videoID, lang string) (*TranscriptResult, error) {
	sess, err := s.lib.NewSession(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	video, err := sess.VideoInfo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("video info: %w", err)
	}
	if video == nil {
		return nil, errors.New("video info: empty response")
	}
	tracks := video.captionTracks()
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks in video info")
	}
	track, _ := SelectTrack(tracks, lang)
	entries, err := sess.Download(ctx, video, track)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	return newResult(videoID, cleanEntries(entries), trackInfo(track, StrategyLibrary, cfg.Name))
}

// cleanEntries applies the decoder's entry rules to library output: blank
// text is dropped and negative offsets clamp to 0.
func cleanEntries(entries []CaptionEntry) []CaptionEntry {
	out := make([]CaptionEntry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Text) == "" {
			continue
		}
		e.Start = max(e.Start, 0)
		e.Duration = max(e.Duration, 0)
		out = append(out, e)
	}
	return out
}
