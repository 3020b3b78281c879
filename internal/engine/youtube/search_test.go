package youtube

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testInitialData = `{"contents":{"sectionListRenderer":{"contents":[{"itemSectionRenderer":{"contents":[` +
	`{"videoRenderer":{"videoId":"aaaaaaaaaaa","title":{"runs":[{"text":"First "},{"text":"video"}]},"ownerText":{"runs":[{"text":"Chan A"}]},"descriptionSnippet":{"runs":[{"text":"about {braces} and \"quotes\""}]}}},` +
	`{"adSlotRenderer":{"title":"skip me"}},` +
	`{"videoRenderer":{"videoId":"bbbbbbbbbbb","title":{"runs":[{"text":"Second"}]},"ownerText":{"runs":[{"text":"Chan B"}]}}},` +
	`{"videoRenderer":{"videoId":"ccccccccccc","title":{"runs":[{"text":"Third"}]}}}` +
	`]}}]}}}`

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", `{"a":1};var x = 2;`, `{"a":1}`},
		{"nested", `{"a":{"b":{}}} trailing`, `{"a":{"b":{}}}`},
		{"braces in strings", `{"a":"}{","b":"\"}"} x`, `{"a":"}{","b":"\"}"}`},
		{"escaped backslash before quote", `{"a":"\\"} x`, `{"a":"\\"}`},
		{"not an object", `[1,2]`, ""},
		{"unterminated", `{"a":{`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON([]byte(tt.in))
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestExtractVideosFromInitialData(t *testing.T) {
	videos := extractVideosFromInitialData([]byte(testInitialData), 10)
	require.Len(t, videos, 3)
	assert.Equal(t, Video{
		ID:      "aaaaaaaaaaa",
		Title:   "First video",
		Channel: "Chan A",
		URL:     "https://www.youtube.com/watch?v=aaaaaaaaaaa",
		Snippet: `about {braces} and "quotes"`,
	}, videos[0])
	assert.Equal(t, "bbbbbbbbbbb", videos[1].ID)
	assert.Equal(t, "ccccccccccc", videos[2].ID)

	assert.Len(t, extractVideosFromInitialData([]byte(testInitialData), 2), 2)
}

func TestSearcherScrapesWithoutKeys(t *testing.T) {
	f := &fakeFetcher{handler: func(req Request) (*Response, error) {
		if !strings.Contains(req.URL, "/results?search_query=go+generics") {
			t.Errorf("unexpected URL %s", req.URL)
		}
		return ok(`<script>var ytInitialData = ` + testInitialData + `;</script>`)
	}}
	videos, err := NewSearcher(f).Search(context.Background(), "go generics", "en", 2)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "aaaaaaaaaaa", videos[0].ID)
}

func TestSearcherDataAPIKeyFallback(t *testing.T) {
	f := &fakeFetcher{handler: func(req Request) (*Response, error) {
		u, err := url.Parse(req.URL)
		require.NoError(t, err)
		switch u.Query().Get("key") {
		case "exhausted":
			return status(http.StatusForbidden)
		case "fresh":
			assert.Equal(t, "15", u.Query().Get("maxResults"))
			assert.Equal(t, "de", u.Query().Get("relevanceLanguage"))
			return ok(`{"items":[` +
				`{"id":{"videoId":"ddddddddddd"},"snippet":{"title":"Data API hit","description":"desc","channelTitle":"Chan D"}},` +
				`{"id":{"channelId":"UCxyz"},"snippet":{"title":"a channel"}}]}`)
		}
		t.Errorf("unexpected request %s", req.URL)
		return status(http.StatusNotFound)
	}}

	videos, err := NewSearcher(f, "exhausted", " ", "fresh").Search(context.Background(), "golang", "de", 50)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, Video{
		ID:      "ddddddddddd",
		Title:   "Data API hit",
		Channel: "Chan D",
		URL:     "https://www.youtube.com/watch?v=ddddddddddd",
		Snippet: "desc",
	}, videos[0])
	assert.Equal(t, 2, f.count("googleapis.com"))
}

func TestSearcherFallsBackToScrapeOnAPIError(t *testing.T) {
	f := &fakeFetcher{handler: func(req Request) (*Response, error) {
		if strings.Contains(req.URL, "googleapis.com") {
			return status(http.StatusInternalServerError)
		}
		return ok(`var ytInitialData = ` + testInitialData + `;`)
	}}
	videos, err := fastRetry(NewSearcher(f, "k1", "k2"), 2).Search(context.Background(), "golang", "", 0)
	require.NoError(t, err)
	assert.Len(t, videos, 3)
	assert.Equal(t, 3, f.count("googleapis.com"), "one key, retried; non-quota errors do not rotate keys")
	assert.Equal(t, 0, f.count("key=k2"))
}

func TestSearcherRetriesTransientStatus(t *testing.T) {
	calls := 0
	f := &fakeFetcher{handler: func(req Request) (*Response, error) {
		calls++
		if calls == 1 {
			return status(http.StatusServiceUnavailable)
		}
		return ok(`var ytInitialData = ` + testInitialData + `;`)
	}}
	videos, err := fastRetry(NewSearcher(f), 2).Search(context.Background(), "golang", "", 0)
	require.NoError(t, err)
	assert.Len(t, videos, 3)
	assert.Equal(t, 2, f.count("/results?"))
}

func TestSearcherDoesNotRetryClientErrors(t *testing.T) {
	f := &fakeFetcher{handler: func(Request) (*Response, error) { return status(http.StatusNotFound) }}
	_, err := fastRetry(NewSearcher(f), 2).Search(context.Background(), "golang", "", 0)

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, 1, f.count("/results?"))
}

func fastRetry(s *Searcher, retries int) *Searcher {
	s.retry = stealth.RetryConfig{
		MaxRetries:  retries,
		InitialWait: time.Millisecond,
		MaxWait:     time.Millisecond,
		Multiplier:  1,
	}
	return s
}

func TestSearcherEmptyQuery(t *testing.T) {
	_, err := NewSearcher(&fakeFetcher{}).Search(context.Background(), "   ", "", 5)
	assert.Error(t, err)
}
