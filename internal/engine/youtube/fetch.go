package youtube

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

// DefaultFetchTimeout bounds a single HTTP exchange when none is configured.
const DefaultFetchTimeout = 15 * time.Second

const (
	maxWatchPageBytes = 6 * 1024 * 1024
	maxResponseBytes  = 3 * 1024 * 1024
)

// User-Agent strings for Innertube identities.
const (
	userAgentDesktop = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	userAgentAndroid = "com.google.android.youtube/20.10.38 (Linux; U; Android 13) gzip"
)

// Request is a single outbound HTTP exchange.
type Request struct {
	Method string
	URL    string
	Header map[string]string
	Body   []byte
}

// Response carries the status and the (size-limited) body.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher performs HTTP exchanges for the strategies.
// Implementations must honor ctx cancellation and bound each call with a timeout.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*Response, error)
}

// HTTPFetcher is a Fetcher over net/http.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPFetcher wraps client; a nil client gets a dedicated one.
// timeout <= 0 falls back to DefaultFetchTimeout.
func NewHTTPFetcher(client *http.Client, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if client == nil {
		client = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		}
	}
	return &HTTPFetcher{client: client, timeout: timeout}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, r Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range r.Header {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxWatchPageBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// StealthFetcher sends requests through a go-stealth browser client
// (Chrome TLS fingerprint, optional proxy pool).
type StealthFetcher struct {
	client  *stealth.BrowserClient
	timeout time.Duration
}

// NewStealthFetcher wraps a go-stealth browser client.
func NewStealthFetcher(client *stealth.BrowserClient, timeout time.Duration) *StealthFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &StealthFetcher{client: client, timeout: timeout}
}

type stealthResult struct {
	data   []byte
	status int
	err    error
}

// Fetch implements Fetcher. The browser client has no context support, so the
// exchange runs in its own goroutine and the caller stops waiting on ctx expiry;
// the client's own timeout bounds the abandoned exchange.
func (f *StealthFetcher) Fetch(ctx context.Context, r Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	headers := stealth.ChromeHeaders()
	for k, v := range r.Header {
		for base := range headers {
			if strings.EqualFold(base, k) {
				delete(headers, base)
			}
		}
		headers[k] = v
	}

	done := make(chan stealthResult, 1)
	go func() {
		var body io.Reader
		if r.Body != nil {
			body = bytes.NewReader(r.Body)
		}
		data, _, status, err := f.client.Do(method, r.URL, headers, body)
		done <- stealthResult{data: data, status: status, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		return &Response{StatusCode: res.status, Body: res.data}, nil
	}
}

// fetchOK performs req and fails on transport errors and non-2xx statuses.
func fetchOK(ctx context.Context, f Fetcher, req Request, limit int) ([]byte, error) {
	resp, err := f.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, URL: req.URL}
	}
	body := resp.Body
	if limit > 0 && len(body) > limit {
		body = body[:limit]
	}
	return body, nil
}

// watchPageURL is the canonical watch page for id.
func watchPageURL(id string) string {
	return ytBaseURL + "/watch?v=" + id
}

// fetchWatchPage GETs the watch page with a desktop browser identity.
// Non-2xx statuses map to ErrPageFetch.
func fetchWatchPage(ctx context.Context, f Fetcher, id string) ([]byte, error) {
	resp, err := f.Fetch(ctx, Request{
		Method: http.MethodGet,
		URL:    watchPageURL(id),
		Header: map[string]string{
			"User-Agent":      stealth.RandomUserAgent(),
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: HTTP %d: video may be unavailable", ErrPageFetch, resp.StatusCode)
	}
	return resp.Body, nil
}

// fetchCaptionContent GETs caption content from a track or candidate URL.
func fetchCaptionContent(ctx context.Context, f Fetcher, rawURL string) ([]byte, error) {
	return fetchOK(ctx, f, Request{
		Method: http.MethodGet,
		URL:    rawURL,
		Header: map[string]string{"User-Agent": userAgentDesktop},
	}, maxResponseBytes)
}
