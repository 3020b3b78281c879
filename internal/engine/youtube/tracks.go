package youtube

import "strings"

// SelectTrack picks the caption track for lang: exact code match first, then
// a regional variant whose code starts with lang ("en" matches "en-US"), then
// the first track as discovered. ok is false only for an empty list.
func SelectTrack(tracks []CaptionTrack, lang string) (track CaptionTrack, ok bool) {
	if len(tracks) == 0 {
		return CaptionTrack{}, false
	}
	for _, t := range tracks {
		if t.LanguageCode == lang {
			return t, true
		}
	}
	if lang != "" {
		for _, t := range tracks {
			if strings.HasPrefix(t.LanguageCode, lang) {
				return t, true
			}
		}
	}
	return tracks[0], true
}

// trackInfo builds TrackInfo for a selected track. Tracks without a name fall
// back to their language code.
func trackInfo(t CaptionTrack, strategy, client string) TrackInfo {
	name := t.Name
	if name == "" {
		name = t.LanguageCode
	}
	return TrackInfo{
		Name:            name,
		Language:        t.LanguageCode,
		IsAutoGenerated: t.IsAutoGenerated(),
		ExtractedWith:   strategy,
		Client:          client,
	}
}
