package youtube

import (
	"regexp"
	"strings"
)

var bareVideoIDRE = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// videoIDPatterns are tried in order; the first capture group is the ID.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/watch\?(?:.*&)?v=([a-zA-Z0-9_-]{11})`),
}

// NormalizeVideoID returns the 11-char video ID for a bare ID or any known URL shape.
// Unrecognized input is returned unchanged; downstream fetches surface the error.
func NormalizeVideoID(raw string) string {
	s := strings.TrimSpace(raw)
	if bareVideoIDRE.MatchString(s) {
		return s
	}
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(s); len(m) >= 2 {
			return m[1]
		}
	}
	return raw
}

// IsVideoID reports whether s is a well-formed 11-char video ID.
func IsVideoID(s string) bool {
	return bareVideoIDRE.MatchString(s)
}
