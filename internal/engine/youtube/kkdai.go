package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	ytlib "github.com/kkdai/youtube/v2"
	"golang.org/x/net/html"
)

// KkdaiLibrary is a Library backed by github.com/kkdai/youtube/v2.
type KkdaiLibrary struct {
	transport http.RoundTripper
	timeout   time.Duration
}

// NewKkdaiLibrary returns a Library whose sessions share transport.
// A nil transport uses http.DefaultTransport.
func NewKkdaiLibrary(transport http.RoundTripper, timeout time.Duration) *KkdaiLibrary {
	if transport == nil {
		transport = http.DefaultTransport
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &KkdaiLibrary{transport: transport, timeout: timeout}
}

// NewSession implements Library. Each session gets its own HTTP client so
// variants never share cookies.
func (l *KkdaiLibrary) NewSession(_ context.Context, cfg SessionConfig) (LibrarySession, error) {
	hc := &http.Client{
		Timeout:   l.timeout,
		Transport: &sessionTransport{base: l.transport, cfg: cfg},
	}
	if !cfg.DisableSession {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		hc.Jar = jar
	}
	return &kkdaiSession{client: &ytlib.Client{HTTPClient: hc}}, nil
}

// sessionTransport applies a SessionConfig to every outgoing library request.
type sessionTransport struct {
	base http.RoundTripper
	cfg  SessionConfig
}

func (t *sessionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	switch {
	case t.cfg.DisableSession:
		req.Header.Del("Cookie")
		req.Header.Del("X-Goog-Visitor-Id")
	case t.cfg.ExplicitVisitorData:
		req.Header.Set("X-Goog-Visitor-Id", t.cfg.VisitorData)
	}
	return t.base.RoundTrip(req)
}

type kkdaiSession struct {
	client *ytlib.Client
}

func (s *kkdaiSession) VideoInfo(ctx context.Context, videoID string) (*LibraryVideo, error) {
	v, err := s.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, err
	}
	tracks := make([]CaptionTrack, 0, len(v.CaptionTracks))
	for _, t := range v.CaptionTracks {
		tracks = append(tracks, CaptionTrack{
			BaseURL:      t.BaseURL,
			LanguageCode: t.LanguageCode,
			Name:         t.Name.SimpleText,
			Kind:         t.Kind,
		})
	}
	return &LibraryVideo{Captions: tracks, Native: v}, nil
}

// Download fetches the transcript for track's language. kkdai's get_transcript
// call takes only a language code and the platform picks the track itself, so
// when a manual and an asr track share that code the content may come from
// the other one. TrackInfo for the library strategy is best-effort in that case.
func (s *kkdaiSession) Download(ctx context.Context, video *LibraryVideo, track CaptionTrack) ([]CaptionEntry, error) {
	v, ok := video.Native.(*ytlib.Video)
	if !ok || v == nil {
		return nil, errors.New("video info was not produced by this library")
	}
	segments, err := s.client.GetTranscriptCtx(ctx, v, track.LanguageCode)
	if err != nil {
		return nil, err
	}
	entries := make([]CaptionEntry, 0, len(segments))
	for _, seg := range segments {
		entries = append(entries, CaptionEntry{
			Text:     html.UnescapeString(seg.Text),
			Start:    float64(seg.StartMs) / 1000,
			Duration: float64(seg.Duration) / 1000,
		})
	}
	return entries, nil
}
