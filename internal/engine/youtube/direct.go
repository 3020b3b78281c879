package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

const (
	directTrackName = "Direct extraction"
	maxCandidates   = 10
)

// candidatePattern finds raw caption URLs in watch page markup.
type candidatePattern struct {
	re      *regexp.Regexp
	extract func(m []string) []string
}

var httpsURLRE = regexp.MustCompile(`https:[^"]+`)

// directPatterns are scanned in order; candidates keep discovery order.
var directPatterns = []candidatePattern{
	{
		re:      regexp.MustCompile(`https://www\.youtube\.com/api/timedtext[^"]+`),
		extract: func(m []string) []string { return m[:1] },
	},
	{
		re: regexp.MustCompile(`"captionTracks":\[([^\]]+)\]`),
		extract: func(m []string) []string {
			var out []string
			for _, u := range httpsURLRE.FindAllString(m[1], -1) {
				if strings.Contains(u, "timedtext") {
					out = append(out, u)
				}
			}
			return out
		},
	},
	{
		re:      regexp.MustCompile(`"baseUrl":"(https:[^"]+timedtext[^"]+)"`),
		extract: func(m []string) []string { return m[1:2] },
	},
}

// unescapeCaptionURL turns a JSON-escaped URL from page markup into a fetchable one.
func unescapeCaptionURL(raw string) string {
	s := strings.ReplaceAll(raw, `\u0026`, "&")
	s = strings.ReplaceAll(s, `\/`, "/")
	return strings.ReplaceAll(s, `\`, "")
}

// findCaptionURLs returns unique cleaned caption URLs in discovery order.
func findCaptionURLs(page []byte) []string {
	text := string(page)
	seen := make(map[string]bool)
	var out []string
	for _, p := range directPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			for _, raw := range p.extract(m) {
				u := unescapeCaptionURL(raw)
				if u == "" || seen[u] {
					continue
				}
				seen[u] = true
				out = append(out, u)
				if len(out) == maxCandidates {
					return out
				}
			}
		}
	}
	return out
}

// DirectURLStrategy bypasses structured metadata and fetches caption URLs
// embedded as literals in the watch page.
type DirectURLStrategy struct {
	fetcher Fetcher
}

// NewDirectURLStrategy returns a direct-URL strategy.
func NewDirectURLStrategy(f Fetcher) *DirectURLStrategy {
	return &DirectURLStrategy{fetcher: f}
}

// Name implements Strategy.
func (s *DirectURLStrategy) Name() string { return StrategyDirectURL }

// Extract implements Strategy.
func (s *DirectURLStrategy) Extract(ctx context.Context, videoID, lang string, rec *Recorder) (*TranscriptResult, error) {
	page, err := fetchWatchPage(ctx, s.fetcher, videoID)
	if err != nil {
		return nil, err
	}
	candidates := findCaptionURLs(page)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%s: %w: no caption URLs in page", StrategyDirectURL, ErrNoCaptionsFound)
	}

	info := TrackInfo{
		Name:            directTrackName,
		Language:        lang,
		IsAutoGenerated: true,
		ExtractedWith:   StrategyDirectURL,
	}
	var last error
	for i, u := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := s.tryCandidate(ctx, videoID, u, info)
		if err == nil {
			return res, nil
		}
		last = err
		rec.Record(StrategyDirectURL, fmt.Sprintf("candidate-%d", i+1), err)
		slog.Debug("youtube: direct candidate failed",
			slog.String("id", videoID), slog.Int("candidate", i+1), slog.Any("err", err))
	}
	return nil, noCaptions(StrategyDirectURL, last)
}

func (s *DirectURLStrategy) tryCandidate(ctx context.Context, videoID, u string, info TrackInfo) (*TranscriptResult, error) {
	content, err := fetchCaptionContent(ctx, s.fetcher, u)
	if err != nil {
		return nil, fmt.Errorf("caption fetch: %w", err)
	}
	entries, err := DecodeTimedText(content)
	if err != nil {
		return nil, err
	}
	return newResult(videoID, entries, info)
}
