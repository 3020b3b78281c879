// Package youtube extracts time-aligned caption transcripts from YouTube.
//
// The implementation is split across files by responsibility:
//
//	videoid.go    video ID normalization from bare IDs and URL shapes
//	fetch.go      Fetcher boundary (plain net/http or go-stealth browser client)
//	innertube.go  Innertube /player types, client identity table, caption locations
//	player.go     watch page API key, then /player under several clients
//	library.go    third-party client library under several session variants
//	kkdai.go      Library backed by github.com/kkdai/youtube/v2
//	direct.go     raw timedtext URLs scraped from the watch page
//	tracks.go     caption track selection by language
//	timedtext.go  timed-text XML decoding and plain-text derivation
//	extractor.go  strategy orchestration and failure aggregation
//	search.go     video search (Data API v3 + ytInitialData scraping)
package youtube

// Strategy names reported in TrackInfo.ExtractedWith and in failure attempts.
const (
	StrategyPlayer    = "player"
	StrategyLibrary   = "library"
	StrategyDirectURL = "direct-url"
)

// DefaultLanguage is used when the caller does not request a language.
const DefaultLanguage = "en"

const ytBaseURL = "https://www.youtube.com"

// CaptionTrack is caption track metadata discovered during one strategy attempt.
type CaptionTrack struct {
	BaseURL      string
	LanguageCode string
	Name         string
	Kind         string // "asr" = auto-generated
}

// IsAutoGenerated reports whether the track is machine-generated.
func (t CaptionTrack) IsAutoGenerated() bool {
	return t.Kind == "asr"
}

// CaptionEntry is one timed caption unit. Start and Duration are in seconds.
type CaptionEntry struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// TrackInfo describes the track a transcript was produced from. For the
// library strategy Name and IsAutoGenerated describe the selected track,
// which the library may not honour beyond its language code.
type TrackInfo struct {
	Name            string `json:"name"`
	Language        string `json:"language"`
	IsAutoGenerated bool   `json:"is_auto_generated"`
	ExtractedWith   string `json:"extracted_with"`
	Client          string `json:"client,omitempty"` // client identity or session variant, when the strategy has one
}

// TranscriptResult is the normalized output of a successful extraction.
type TranscriptResult struct {
	VideoID    string         `json:"video_id"`
	Structured []CaptionEntry `json:"structured"`
	PlainText  string         `json:"plain_text"`
	TrackInfo  TrackInfo      `json:"track_info"`
}

// newResult builds a TranscriptResult and enforces the success invariant:
// a result with no entries, or whose entries are all annotations, is not a result.
func newResult(videoID string, entries []CaptionEntry, info TrackInfo) (*TranscriptResult, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTranscript
	}
	text := PlainText(entries)
	if text == "" {
		return nil, ErrEmptyTranscript
	}
	return &TranscriptResult{
		VideoID:    videoID,
		Structured: entries,
		PlainText:  text,
		TrackInfo:  info,
	}, nil
}
