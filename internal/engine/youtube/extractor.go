package youtube

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// DefaultTranscriptTimeout bounds a whole GetTranscript call when none is configured.
// It is shared out between the strategies, so each of the three gets at least a third.
const DefaultTranscriptTimeout = 90 * time.Second

// Strategy is one independent way of locating and decoding captions.
// Per-variant failures are recorded on rec; only exhaustion is returned.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, videoID, lang string, rec *Recorder) (*TranscriptResult, error)
}

// Options configures an Extractor. Zero values get defaults.
type Options struct {
	// Fetcher performs every HTTP exchange of the player and direct-url strategies.
	Fetcher Fetcher
	// Library backs the library strategy.
	Library Library
	// Timeout bounds one GetTranscript call.
	Timeout time.Duration
	// Strategies overrides the default player, library, direct-url order.
	Strategies []Strategy
	// OnResult, if set, observes every finished call (nil err on success).
	OnResult func(res *TranscriptResult, err error)
}

// Extractor runs the strategies in fixed order and returns the first success.
// It holds no per-call state and is safe for concurrent use.
type Extractor struct {
	strategies []Strategy
	timeout    time.Duration
	onResult   func(*TranscriptResult, error)
}

// NewExtractor wires the strategies from opts.
func NewExtractor(opts Options) *Extractor {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTranscriptTimeout
	}
	strategies := opts.Strategies
	if len(strategies) == 0 {
		f := opts.Fetcher
		if f == nil {
			f = NewHTTPFetcher(nil, 0)
		}
		lib := opts.Library
		if lib == nil {
			lib = NewKkdaiLibrary(nil, 0)
		}
		strategies = []Strategy{
			NewPlayerStrategy(f, nil),
			NewLibraryStrategy(lib, nil),
			NewDirectURLStrategy(f),
		}
	}
	return &Extractor{strategies: strategies, timeout: opts.Timeout, onResult: opts.OnResult}
}

// GetTranscript returns the transcript of idOrURL in lang ("en" when empty).
// The error is *AllStrategiesFailedError unless the caller's ctx ends first,
// in which case the context error is returned and no further strategies run.
func (e *Extractor) GetTranscript(ctx context.Context, idOrURL, lang string) (*TranscriptResult, error) {
	res, err := e.getTranscript(ctx, idOrURL, lang)
	if e.onResult != nil {
		e.onResult(res, err)
	}
	return res, err
}

// getTranscript splits the call timeout between the strategies still to run:
// each gets the remaining budget divided by the number left, so a strategy
// that hangs until its deadline never starves the ones after it.
func (e *Extractor) getTranscript(ctx context.Context, idOrURL, lang string) (*TranscriptResult, error) {
	deadline := time.Now().Add(e.timeout)

	videoID := NormalizeVideoID(idOrURL)
	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = DefaultLanguage
	}

	rec := &Recorder{}
	var last error
	for i, s := range e.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		budget := time.Until(deadline) / time.Duration(len(e.strategies)-i)
		sctx, cancel := context.WithTimeout(ctx, budget)
		res, err := s.Extract(sctx, videoID, lang, rec)
		cancel()

		if err == nil && res != nil && len(res.Structured) > 0 {
			slog.Info("youtube: transcript extracted",
				slog.String("id", videoID),
				slog.String("strategy", s.Name()),
				slog.String("lang", res.TrackInfo.Language),
				slog.Int("entries", len(res.Structured)))
			return res, nil
		}
		if err == nil {
			err = ErrEmptyTranscript
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			slog.Warn("youtube: transcript cancelled",
				slog.String("id", videoID), slog.String("strategy", s.Name()), slog.Any("err", ctxErr))
			return nil, ctxErr
		}
		last = err
		rec.Record(s.Name(), "", err)
		slog.Warn("youtube: strategy failed",
			slog.String("id", videoID), slog.String("strategy", s.Name()),
			slog.Duration("budget", budget), slog.Any("err", err))
	}

	return nil, &AllStrategiesFailedError{
		VideoID:  videoID,
		Attempts: rec.Attempts(),
		Last:     last,
	}
}
