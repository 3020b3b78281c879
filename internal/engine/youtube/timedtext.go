package youtube

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// timedTextDoc accepts both timed-text layouts YouTube serves:
//
//	<transcript><text start="1.2" dur="3.4">…</text></transcript>   (seconds)
//	<timedtext format="3"><body><p t="1200" d="3400"><s>…</s></p></body></timedtext>   (milliseconds)
type timedTextDoc struct {
	XMLName xml.Name
	Lines   []ttLine `xml:"text"`
	Paras   []ttPara `xml:"body>p"`
}

type ttLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

type ttPara struct {
	T        string      `xml:"t,attr"`
	D        string      `xml:"d,attr"`
	Text     string      `xml:",chardata"`
	Segments []ttSegment `xml:"s"`
}

type ttSegment struct {
	Text string `xml:",chardata"`
}

var (
	bracketRE    = regexp.MustCompile(`(?s)\[.*?\]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// DecodeTimedText parses timed-text XML into caption entries in source order.
// Entries whose text is blank after trimming are dropped.
func DecodeTimedText(data []byte) ([]CaptionEntry, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrDecode)
	}

	var doc timedTextDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	entries := make([]CaptionEntry, 0, len(doc.Lines)+len(doc.Paras))
	for _, l := range doc.Lines {
		entries = appendEntry(entries, l.Text, parseSeconds(l.Start), parseSeconds(l.Dur))
	}
	for _, p := range doc.Paras {
		var sb strings.Builder
		sb.WriteString(p.Text)
		for _, s := range p.Segments {
			sb.WriteString(s.Text)
		}
		entries = appendEntry(entries, sb.String(), parseSeconds(p.T)/1000, parseSeconds(p.D)/1000)
	}
	return entries, nil
}

func appendEntry(entries []CaptionEntry, raw string, start, dur float64) []CaptionEntry {
	text := html.UnescapeString(raw)
	if strings.TrimSpace(text) == "" {
		return entries
	}
	return append(entries, CaptionEntry{Text: text, Start: start, Duration: dur})
}

// parseSeconds parses a non-negative float; absent, malformed or negative values yield 0.
func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// PlainText joins entry texts with single spaces and cleans the result.
func PlainText(entries []CaptionEntry) string {
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Text
	}
	return CleanPlainText(strings.Join(parts, " "))
}

// CleanPlainText strips bracketed annotations such as [Music], collapses
// whitespace runs and trims. Applying it twice equals applying it once.
func CleanPlainText(s string) string {
	s = bracketRE.ReplaceAllString(s, "")
	s = whitespaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
