package engine

import (
	"context"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/llm"
	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
)

// CompleteFunc sends a single prompt to the LLM and returns the raw reply.
type CompleteFunc func(ctx context.Context, prompt string) (string, error)

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey          string
	LLMAPIKeyFallbacks []string
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int
	LLMClient          *llm.Client
	Complete           CompleteFunc // nil = LLMClient.Complete

	FetchTimeout       time.Duration // per HTTP exchange
	TranscriptTimeout  time.Duration // per GetTranscript call
	DefaultLanguage    string
	MaxTranscriptChars int // 0 = no cap on tool output
	SummaryInputChars  int
	QAInputChars       int

	YouTubeAPIKey         string
	YouTubeAPIKeyFallback string

	StealthEnabled bool
	HTTPClient     *http.Client
	BrowserClient  *BrowserClient // nil = plain net/http fetcher

	ToolRateLimit float64 // calls per second across tools; 0 = unlimited
	ToolRateBurst int

	Transcripts *youtube.Extractor // nil = built from the fields above
	Searcher    *youtube.Searcher  // nil = built from the fields above
}

var cfg Config

// Cfg exposes the engine configuration to the server packages.
// Always points to the current cfg value.
var Cfg = &cfg

// Init fills defaults, wires the extractor and searcher, and installs c.
func Init(c Config) {
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = youtube.DefaultFetchTimeout
	}
	if c.TranscriptTimeout <= 0 {
		c.TranscriptTimeout = youtube.DefaultTranscriptTimeout
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = youtube.DefaultLanguage
	}
	if c.SummaryInputChars <= 0 {
		c.SummaryInputChars = 8000
	}
	if c.QAInputChars <= 0 {
		c.QAInputChars = 6000
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	if c.Complete == nil && c.LLMClient != nil {
		client := c.LLMClient
		c.Complete = func(ctx context.Context, prompt string) (string, error) {
			return client.Complete(ctx, "", prompt)
		}
	}

	fetcher := NewFetcher(c)
	if c.Transcripts == nil {
		c.Transcripts = youtube.NewExtractor(youtube.Options{
			Fetcher:  fetcher,
			Library:  youtube.NewKkdaiLibrary(c.HTTPClient.Transport, c.FetchTimeout),
			Timeout:  c.TranscriptTimeout,
			OnResult: recordTranscript,
		})
	}
	if c.Searcher == nil {
		c.Searcher = youtube.NewSearcher(fetcher, c.YouTubeAPIKey, c.YouTubeAPIKeyFallback)
	}

	cfg = c
	Cfg = &cfg
}
