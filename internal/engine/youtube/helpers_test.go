package youtube

import (
	"context"
	"net/http"
	"strings"
	"sync"
)

const testVideoID = "dQw4w9WgXcQ"

const testCaptionXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0.5" dur="1.5">[Music]</text>` +
	`<text start="2" dur="1.25">Never gonna give you up</text>` +
	`<text start="3.25" dur="2">never gonna let &amp;#39;you&amp;#39; down</text>` +
	`</transcript>`

// fakeFetcher answers requests from a handler and records them.
type fakeFetcher struct {
	mu       sync.Mutex
	handler  func(req Request) (*Response, error)
	requests []Request
}

func (f *fakeFetcher) Fetch(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.handler(req)
}

func (f *fakeFetcher) count(substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if strings.Contains(r.URL, substr) {
			n++
		}
	}
	return n
}

func ok(body string) (*Response, error) {
	return &Response{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

func status(code int) (*Response, error) {
	return &Response{StatusCode: code}, nil
}

func watchPage(extra string) string {
	return `<html><head><script>ytcfg.set({"INNERTUBE_API_KEY":"AIzaTestKey","INNERTUBE_CLIENT_NAME":"WEB"});</script></head>` +
		`<body><script>var ytInitialPlayerResponse = {"videoDetails":{"videoId":"` + testVideoID + `"}` + extra + `};</script></body></html>`
}

// fakeLibrary hands out preconfigured sessions keyed by variant name.
type fakeLibrary struct {
	mu       sync.Mutex
	sessions map[string]*fakeSession
	opened   []string
}

func (l *fakeLibrary) NewSession(_ context.Context, cfg SessionConfig) (LibrarySession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opened = append(l.opened, cfg.Name)
	s, ok := l.sessions[cfg.Name]
	if !ok {
		return nil, errSessionUnavailable
	}
	return s, nil
}

type fakeSession struct {
	video   *LibraryVideo
	infoErr error
	entries []CaptionEntry
	dlErr   error

	downloaded []CaptionTrack
}

func (s *fakeSession) VideoInfo(context.Context, string) (*LibraryVideo, error) {
	return s.video, s.infoErr
}

func (s *fakeSession) Download(_ context.Context, _ *LibraryVideo, t CaptionTrack) ([]CaptionEntry, error) {
	s.downloaded = append(s.downloaded, t)
	return s.entries, s.dlErr
}

type stringError string

func (e stringError) Error() string { return string(e) }

const errSessionUnavailable = stringError("session unavailable")
