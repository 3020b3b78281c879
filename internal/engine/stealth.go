package engine

import (
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
)

// Re-export stealth types for engine consumers.
type BrowserClient = stealth.BrowserClient

// NewFetcher picks the HTTP boundary for YouTube traffic: the stealth browser
// client when enabled and available, plain net/http otherwise.
func NewFetcher(c Config) youtube.Fetcher {
	if c.StealthEnabled && c.BrowserClient != nil {
		return youtube.NewStealthFetcher(c.BrowserClient, c.FetchTimeout)
	}
	return youtube.NewHTTPFetcher(c.HTTPClient, c.FetchTimeout)
}
