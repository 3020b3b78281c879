package engine

import "github.com/anatolykoptev/go_transcript/internal/engine/youtube"

// --- youtube_transcript ---

// TranscriptInput is the input for the youtube_transcript tool.
type TranscriptInput struct {
	Video     string `json:"video" jsonschema:"YouTube video ID or URL (watch, youtu.be, embed, shorts)"`
	Language  string `json:"language,omitempty" jsonschema:"Caption language code (default: en). Regional variants like en-US match en"`
	MaxLength int    `json:"max_length,omitempty" jsonschema:"Max transcript characters; longer text is cut and marked '... [truncated]'"`
	Format    string `json:"format,omitempty" jsonschema:"Output format: both (default, text + timed entries) or text"`
}

// TranscriptOutput is the structured output for youtube_transcript.
type TranscriptOutput struct {
	VideoID    string                 `json:"video_id"`
	Transcript string                 `json:"transcript"`
	Length     int                    `json:"length"` // rune count before truncation
	Truncated  bool                   `json:"truncated,omitempty"`
	TrackInfo  youtube.TrackInfo      `json:"track_info"`
	Structured []youtube.CaptionEntry `json:"structured,omitempty"`
}

// --- youtube_summarize ---

// SummarizeInput is the input for the youtube_summarize tool.
type SummarizeInput struct {
	Video      string `json:"video,omitempty" jsonschema:"YouTube video ID or URL"`
	Language   string `json:"language,omitempty" jsonschema:"Caption language code (default: en)"`
	Transcript string `json:"transcript,omitempty" jsonschema:"Transcript text to summarize instead of fetching one"`
}

// SummarizeOutput is the structured output for youtube_summarize.
type SummarizeOutput struct {
	VideoID   string             `json:"video_id,omitempty"`
	Summary   string             `json:"summary"`
	TrackInfo *youtube.TrackInfo `json:"track_info,omitempty"`
}

// --- youtube_ask ---

// AskInput is the input for the youtube_ask tool.
type AskInput struct {
	Video      string `json:"video,omitempty" jsonschema:"YouTube video ID or URL"`
	Question   string `json:"question" jsonschema:"Question about the video content"`
	Language   string `json:"language,omitempty" jsonschema:"Caption language code (default: en)"`
	Transcript string `json:"transcript,omitempty" jsonschema:"Transcript text to use instead of fetching one"`
}

// AskOutput is the structured output for youtube_ask.
type AskOutput struct {
	VideoID  string `json:"video_id,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// --- youtube_search ---

// SearchInput is the input for the youtube_search tool.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"Search query"`
	Language string `json:"language,omitempty" jsonschema:"Relevance language code (default: all)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max results (default: 5, max: 15)"`
}

// SearchOutput is the structured output for youtube_search.
type SearchOutput struct {
	Query  string          `json:"query"`
	Videos []youtube.Video `json:"videos"`
}
