package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/anatolykoptev/go-kit/strutil"
)

// TruncatedMarker is appended to transcripts cut by max_length.
const TruncatedMarker = "... [truncated]"

// NormLang normalises a language field: empty string → configured default.
func NormLang(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		if cfg.DefaultLanguage != "" {
			return cfg.DefaultLanguage
		}
		return "en"
	}
	return lang
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
// limit <= 0 leaves s unchanged.
func TruncateRunes(s string, limit int, suffix string) string {
	if limit <= 0 {
		return s
	}
	return strutil.TruncateWith(s, limit, suffix)
}

// TruncateTranscript cuts plain text to maxLen runes and marks the cut.
// maxLen <= 0 falls back to the configured cap; a zero cap means no limit.
func TruncateTranscript(text string, maxLen int) (string, bool) {
	if maxLen <= 0 {
		maxLen = cfg.MaxTranscriptChars
	}
	if maxLen <= 0 || utf8.RuneCountInString(text) <= maxLen {
		return text, false
	}
	return strutil.TruncateWith(text, maxLen, "") + TruncatedMarker, true
}
