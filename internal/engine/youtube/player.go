package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
)

// apiKeyPatterns are tried in order against the watch page; group 1 is the key.
var apiKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"INNERTUBE_API_KEY":"([^"]+)"`),
	regexp.MustCompile(`"innertubeApiKey":"([^"]+)"`),
	regexp.MustCompile(`INNERTUBE_API_KEY.*?"([^"]+)"`),
	regexp.MustCompile(`"apiKey":"([^"]+)"`),
}

var fmtSuffixRE = regexp.MustCompile(`&fmt=\w+$`)

// extractAPIKey returns the first Innertube API key found in the page.
func extractAPIKey(page []byte) (string, error) {
	for _, re := range apiKeyPatterns {
		if m := re.FindSubmatch(page); len(m) >= 2 && len(m[1]) > 0 {
			return string(m[1]), nil
		}
	}
	return "", ErrAPIKeyNotFound
}

// PlayerStrategy scrapes the API key from the watch page, then asks /player
// for caption tracks under each client identity in turn.
type PlayerStrategy struct {
	fetcher Fetcher
	clients []ClientIdentity
}

// NewPlayerStrategy returns a player strategy; nil clients means DefaultClients.
func NewPlayerStrategy(f Fetcher, clients []ClientIdentity) *PlayerStrategy {
	if clients == nil {
		clients = DefaultClients
	}
	return &PlayerStrategy{fetcher: f, clients: clients}
}

// Name implements Strategy.
func (s *PlayerStrategy) Name() string { return StrategyPlayer }

// Extract implements Strategy.
func (s *PlayerStrategy) Extract(ctx context.Context, videoID, lang string, rec *Recorder) (*TranscriptResult, error) {
	page, err := fetchWatchPage(ctx, s.fetcher, videoID)
	if err != nil {
		return nil, err
	}
	key, err := extractAPIKey(page)
	if err != nil {
		return nil, err
	}

	var last error
	for _, c := range s.clients {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := s.tryClient(ctx, c, key, videoID, lang)
		if err == nil {
			return res, nil
		}
		last = err
		rec.Record(StrategyPlayer, c.Name, err)
		slog.Debug("youtube: player client failed",
			slog.String("id", videoID), slog.String("client", c.Name), slog.Any("err", err))
	}
	return nil, noCaptions(StrategyPlayer, last)
}

func (s *PlayerStrategy) tryClient(ctx context.Context, c ClientIdentity, key, videoID, lang string) (*TranscriptResult, error) {
	body, err := json.Marshal(newPlayerRequest(c, videoID, lang))
	if err != nil {
		return nil, err
	}
	data, err := fetchOK(ctx, s.fetcher, Request{
		Method: http.MethodPost,
		URL:    ytPlayerURL + "?key=" + url.QueryEscape(key),
		Header: map[string]string{
			"Content-Type": "application/json",
			"User-Agent":   c.UserAgent,
			"Origin":       ytBaseURL,
			"Referer":      watchPageURL(videoID),
		},
		Body: body,
	}, maxResponseBytes)
	if err != nil {
		return nil, fmt.Errorf("player request: %w", err)
	}

	var resp playerResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	tracks := resp.captionTracks()
	if len(tracks) == 0 {
		if reason := resp.unplayableReason(); reason != "" {
			return nil, fmt.Errorf("no caption tracks: %s", reason)
		}
		return nil, errors.New("no caption tracks in player response")
	}

	track, _ := SelectTrack(tracks, lang)
	content, err := fetchCaptionContent(ctx, s.fetcher, fmtSuffixRE.ReplaceAllString(track.BaseURL, ""))
	if err != nil {
		return nil, fmt.Errorf("caption fetch: %w", err)
	}
	entries, err := DecodeTimedText(content)
	if err != nil {
		return nil, err
	}
	return newResult(videoID, entries, trackInfo(track, StrategyPlayer, c.Name))
}
