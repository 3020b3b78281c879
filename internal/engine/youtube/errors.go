package youtube

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPageFetch means the watch page returned a non-success status.
	ErrPageFetch = errors.New("watch page fetch failed")
	// ErrAPIKeyNotFound means the watch page markup did not yield an Innertube API key.
	ErrAPIKeyNotFound = errors.New("innertube API key not found in page")
	// ErrNoCaptionsFound means a strategy exhausted its search space without usable captions.
	ErrNoCaptionsFound = errors.New("no captions found")
	// ErrDecode means caption content could not be parsed into entries.
	ErrDecode = errors.New("caption decode failed")
	// ErrEmptyTranscript means content parsed but produced no usable text.
	ErrEmptyTranscript = errors.New("empty transcript")
	// ErrAllStrategiesFailed is matched by *AllStrategiesFailedError via errors.Is.
	ErrAllStrategiesFailed = errors.New("all transcript extraction methods failed")
)

// HTTPStatusError is returned by fetch helpers for non-2xx responses.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Attempt is one failed strategy, client identity, session variant or candidate URL.
type Attempt struct {
	Strategy string
	Variant  string // empty for the strategy-level outcome
	Err      error
}

func (a Attempt) String() string {
	if a.Variant == "" {
		return fmt.Sprintf("%s: %v", a.Strategy, a.Err)
	}
	return fmt.Sprintf("%s/%s: %v", a.Strategy, a.Variant, a.Err)
}

// Recorder collects attempts for a single GetTranscript invocation.
// It is owned by that invocation and never shared.
type Recorder struct {
	attempts []Attempt
}

// Record appends a failed attempt.
func (r *Recorder) Record(strategy, variant string, err error) {
	if r == nil || err == nil {
		return
	}
	r.attempts = append(r.attempts, Attempt{Strategy: strategy, Variant: variant, Err: err})
}

// Attempts returns the recorded attempts in order.
func (r *Recorder) Attempts() []Attempt {
	if r == nil {
		return nil
	}
	out := make([]Attempt, len(r.attempts))
	copy(out, r.attempts)
	return out
}

// AllStrategiesFailedError is the terminal failure of GetTranscript.
// Error() surfaces the last strategy's error; Attempts keeps the full history.
type AllStrategiesFailedError struct {
	VideoID  string
	Attempts []Attempt
	Last     error
}

func (e *AllStrategiesFailedError) Error() string {
	return fmt.Sprintf("all transcript extraction methods failed for video %s: last error: %v", e.VideoID, e.Last)
}

// Unwrap exposes the last strategy error so callers can match ErrNoCaptionsFound etc.
func (e *AllStrategiesFailedError) Unwrap() error {
	return e.Last
}

// Is matches ErrAllStrategiesFailed.
func (e *AllStrategiesFailedError) Is(target error) bool {
	return target == ErrAllStrategiesFailed
}

// Summary renders every recorded attempt, one per line.
func (e *AllStrategiesFailedError) Summary() string {
	lines := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		lines = append(lines, a.String())
	}
	return strings.Join(lines, "\n")
}

// noCaptions wraps the last iteration error into a strategy-level ErrNoCaptionsFound.
func noCaptions(strategy string, last error) error {
	if last == nil {
		return fmt.Errorf("%s: %w", strategy, ErrNoCaptionsFound)
	}
	return fmt.Errorf("%s: %w (last error: %w)", strategy, ErrNoCaptionsFound, last)
}
