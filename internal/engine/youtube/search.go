package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
	stealth "github.com/anatolykoptev/go-stealth"
)

const (
	ytDataAPIBase       = "https://www.googleapis.com/youtube/v3"
	ytInitialDataMarker = "var ytInitialData = "
	ytSearchFilter      = "EgIQAQ%3D%3D" // videos only
	snippetMaxLen       = 200

	// DefaultSearchResults is used when the caller passes no limit.
	DefaultSearchResults = 5
	// MaxSearchResults caps a single search.
	MaxSearchResults = 15
)

// ErrQuotaExceeded is returned by the Data API on 403.
var ErrQuotaExceeded = errors.New("youtube data API quota exceeded")

// Video is one search hit.
type Video struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Channel string `json:"channel,omitempty"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

type ytDataSearchResp struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

type textRuns struct {
	Runs []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (r textRuns) String() string {
	var sb strings.Builder
	for _, run := range r.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

type videoRenderer struct {
	VideoID            string    `json:"videoId"`
	Title              textRuns  `json:"title"`
	OwnerText          textRuns  `json:"ownerText"`
	DescriptionSnippet *textRuns `json:"descriptionSnippet"`
}

// Searcher finds videos via the Data API v3 when keys are configured and
// falls back to scraping ytInitialData from the results page. Both requests
// are retried on network errors and 429/5xx.
type Searcher struct {
	fetcher     Fetcher
	keys        []string
	retry       stealth.RetryConfig
	dataAPIBase string
	baseURL     string
}

// NewSearcher returns a Searcher. Empty keys are ignored; keys are tried in order.
func NewSearcher(f Fetcher, apiKeys ...string) *Searcher {
	keys := make([]string, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return &Searcher{
		fetcher:     f,
		keys:        keys,
		retry:       stealth.DefaultRetryConfig,
		dataAPIBase: ytDataAPIBase,
		baseURL:     ytBaseURL,
	}
}

// Search returns up to limit videos for query. lang biases Data API relevance.
func (s *Searcher) Search(ctx context.Context, query, lang string, limit int) ([]Video, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("empty search query")
	}
	if limit <= 0 {
		limit = DefaultSearchResults
	}
	limit = min(limit, MaxSearchResults)

	if len(s.keys) > 0 {
		videos, err := s.searchDataAPI(ctx, query, lang, limit)
		if err == nil {
			return videos, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("youtube: data API search failed, scraping results page", slog.Any("err", err))
	}
	return s.searchInitialData(ctx, query, limit)
}

// searchDataAPI tries each key in turn; quota errors move on to the next key.
func (s *Searcher) searchDataAPI(ctx context.Context, query, lang string, limit int) ([]Video, error) {
	var lastErr error
	for i, key := range s.keys {
		videos, err := s.doDataSearch(ctx, query, lang, limit, key)
		if err == nil {
			return videos, nil
		}
		lastErr = err
		slog.Debug("youtube: data API key failed", slog.Int("key", i), slog.Any("err", err))
		if !errors.Is(err, ErrQuotaExceeded) {
			break
		}
	}
	return nil, lastErr
}

func (s *Searcher) doDataSearch(ctx context.Context, query, lang string, limit int, key string) ([]Video, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(limit))
	params.Set("key", key)
	if lang != "" && lang != "all" {
		params.Set("relevanceLanguage", lang)
	}

	resp, err := s.fetchRetry(ctx, Request{
		Method: http.MethodGet,
		URL:    s.dataAPIBase + "/search?" + params.Encode(),
	})
	if err != nil {
		return nil, fmt.Errorf("youtube data API: %w", err)
	}
	if resp.StatusCode == http.StatusForbidden {
		return nil, ErrQuotaExceeded
	}
	if !resp.OK() {
		return nil, fmt.Errorf("youtube data API %d: %s", resp.StatusCode, strutil.TruncateWith(string(resp.Body), 256, ""))
	}

	var result ytDataSearchResp
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("decode youtube data API: %w", err)
	}
	videos := make([]Video, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, Video{
			ID:      item.ID.VideoID,
			Title:   item.Snippet.Title,
			Channel: item.Snippet.ChannelTitle,
			URL:     watchPageURL(item.ID.VideoID),
			Snippet: strutil.TruncateWith(item.Snippet.Description, snippetMaxLen, ""),
		})
	}
	return videos, nil
}

func (s *Searcher) searchInitialData(ctx context.Context, query string, limit int) ([]Video, error) {
	req := Request{
		Method: http.MethodGet,
		URL:    s.baseURL + "/results?search_query=" + url.QueryEscape(query) + "&sp=" + ytSearchFilter,
		Header: map[string]string{
			"User-Agent":      stealth.RandomUserAgent(),
			"Accept-Language": "en-US,en;q=0.9",
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		},
	}
	resp, err := s.fetchRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("youtube search page: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("youtube search page: %w", &HTTPStatusError{StatusCode: resp.StatusCode, URL: req.URL})
	}
	body := resp.Body

	idx := strings.Index(string(body), ytInitialDataMarker)
	if idx < 0 {
		return nil, errors.New("ytInitialData not found in search page")
	}
	data := extractJSON(body[idx+len(ytInitialDataMarker):])
	if data == nil {
		return nil, errors.New("failed to extract ytInitialData JSON")
	}
	return extractVideosFromInitialData(data, limit), nil
}

// fetchRetry sends req through go-stealth's retry loop. The fetcher's
// response is surfaced to RetryHTTP as a bodiless *http.Response so it can
// apply its retryable-status rules; the last response seen is returned.
func (s *Searcher) fetchRetry(ctx context.Context, req Request) (*Response, error) {
	var last *Response
	_, err := stealth.RetryHTTP(ctx, s.retry, func() (*http.Response, error) {
		resp, err := s.fetcher.Fetch(ctx, req)
		if err != nil {
			return nil, err
		}
		last = resp
		return &http.Response{StatusCode: resp.StatusCode, Body: http.NoBody}, nil
	})
	if err != nil {
		return nil, err
	}
	return last, nil
}

// extractJSON returns the JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// extractVideosFromInitialData walks ytInitialData for videoRenderer entries
// in document order.
func extractVideosFromInitialData(data []byte, limit int) []Video {
	var results []Video
	var walk func(v json.RawMessage)
	walk = func(v json.RawMessage) {
		v = bytes.TrimSpace(v)
		if len(results) >= limit || len(v) == 0 {
			return
		}
		switch v[0] {
		case '{':
			members := objectMembers(v)
			for _, m := range members {
				if m.key != "videoRenderer" {
					continue
				}
				var vr videoRenderer
				if err := json.Unmarshal(m.value, &vr); err == nil && vr.VideoID != "" {
					results = append(results, rendererVideo(vr))
					return
				}
			}
			for _, m := range members {
				walk(m.value)
			}
		case '[':
			var arr []json.RawMessage
			if err := json.Unmarshal(v, &arr); err != nil {
				return
			}
			for _, item := range arr {
				walk(item)
			}
		}
	}
	walk(data)
	return results
}

type member struct {
	key   string
	value json.RawMessage
}

// objectMembers decodes a JSON object keeping source key order.
func objectMembers(raw json.RawMessage) []member {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil
	}
	var out []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return out
		}
		out = append(out, member{key: key, value: value})
	}
	return out
}

func rendererVideo(vr videoRenderer) Video {
	snippet := ""
	if vr.DescriptionSnippet != nil {
		snippet = vr.DescriptionSnippet.String()
	}
	return Video{
		ID:      vr.VideoID,
		Title:   vr.Title.String(),
		Channel: vr.OwnerText.String(),
		URL:     watchPageURL(vr.VideoID),
		Snippet: strutil.TruncateWith(snippet, snippetMaxLen, ""),
	}
}
