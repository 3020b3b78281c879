package youtube

import (
	"encoding/json"
	"strings"
)

// Innertube /player request and response shapes, plus the client identity table.

const ytPlayerURL = ytBaseURL + "/youtubei/v1/player"

// captionParams biases /player toward returning caption metadata.
const captionParams = "8AEB"

// ClientIdentity is one simulated device/application profile sent to /player.
type ClientIdentity struct {
	Name              string
	Version           string
	AndroidSdkVersion int
	OSName            string
	OSVersion         string
	DeviceMake        string
	DeviceModel       string
	UserAgent         string
}

// DefaultClients is the ordered client identity table for the player strategy.
var DefaultClients = []ClientIdentity{
	{Name: "WEB", Version: "2.20231201.01.00", UserAgent: userAgentDesktop},
	{Name: "ANDROID", Version: "20.10.38", AndroidSdkVersion: 33, OSName: "Android", OSVersion: "13", UserAgent: userAgentAndroid},
	{Name: "TVHTML5_SIMPLY_EMBEDDED_PLAYER", Version: "2.0", UserAgent: userAgentAndroid},
	{Name: "IOS", Version: "18.43.4", DeviceMake: "Apple", DeviceModel: "iPhone12,1", UserAgent: userAgentAndroid},
	{Name: "WEB_EMBEDDED_PLAYER", Version: "1.20231201.01.00", UserAgent: userAgentAndroid},
}

type innertubeReq struct {
	Context              innertubeCtx `json:"context"`
	VideoID              string       `json:"videoId"`
	Params               string       `json:"params"`
	CaptionTrackLanguage string       `json:"captionTrackLanguage,omitempty"`
}

type innertubeCtx struct {
	Client  innertubeClient `json:"client"`
	Request innertubeReqCtx `json:"request"`
}

type innertubeReqCtx struct {
	UseSsl bool `json:"useSsl"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	OSName            string `json:"osName,omitempty"`
	OSVersion         string `json:"osVersion,omitempty"`
	DeviceMake        string `json:"deviceMake,omitempty"`
	DeviceModel       string `json:"deviceModel,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

func newPlayerRequest(c ClientIdentity, videoID, lang string) innertubeReq {
	return innertubeReq{
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        c.Name,
				ClientVersion:     c.Version,
				AndroidSdkVersion: c.AndroidSdkVersion,
				OSName:            c.OSName,
				OSVersion:         c.OSVersion,
				DeviceMake:        c.DeviceMake,
				DeviceModel:       c.DeviceModel,
				Hl:                "en",
				Gl:                "US",
			},
			Request: innertubeReqCtx{UseSsl: true},
		},
		VideoID:              videoID,
		Params:               captionParams,
		CaptionTrackLanguage: lang,
	}
}

type playerResp struct {
	Captions *playerCaptions `json:"captions"`

	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type playerCaptions struct {
	PlayerCaptionsTracklistRenderer *struct {
		CaptionTracks []jsonCaptionTrack `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
	PlayerCaptionsRenderer *struct {
		CaptionTracks []jsonCaptionTrack `json:"captionTracks"`
	} `json:"playerCaptionsRenderer"`
	CaptionTracks []jsonCaptionTrack `json:"captionTracks"`
}

type jsonCaptionTrack struct {
	BaseURL      string    `json:"baseUrl"`
	LanguageCode string    `json:"languageCode"`
	Kind         string    `json:"kind"`
	Name         trackName `json:"name"`
}

// trackName accepts "English", {"simpleText":"English"} and {"runs":[{"text":"English"}]}.
type trackName string

func (n *trackName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = trackName(s)
		return nil
	}
	var obj struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// Unknown shapes are tolerated; the name is cosmetic.
		return nil
	}
	if obj.SimpleText != "" {
		*n = trackName(obj.SimpleText)
		return nil
	}
	var sb strings.Builder
	for _, r := range obj.Runs {
		sb.WriteString(r.Text)
	}
	*n = trackName(sb.String())
	return nil
}

// captionLocators are tried in order; the first non-empty list wins.
var captionLocators = []func(*playerCaptions) []jsonCaptionTrack{
	func(c *playerCaptions) []jsonCaptionTrack {
		if c.PlayerCaptionsTracklistRenderer == nil {
			return nil
		}
		return c.PlayerCaptionsTracklistRenderer.CaptionTracks
	},
	func(c *playerCaptions) []jsonCaptionTrack {
		if c.PlayerCaptionsRenderer == nil {
			return nil
		}
		return c.PlayerCaptionsRenderer.CaptionTracks
	},
	func(c *playerCaptions) []jsonCaptionTrack { return c.CaptionTracks },
}

// captionTracks returns the tracks from the first populated location.
func (r *playerResp) captionTracks() []CaptionTrack {
	if r.Captions == nil {
		return nil
	}
	for _, locate := range captionLocators {
		raw := locate(r.Captions)
		if len(raw) == 0 {
			continue
		}
		tracks := make([]CaptionTrack, 0, len(raw))
		for _, t := range raw {
			if t.BaseURL == "" {
				continue
			}
			tracks = append(tracks, CaptionTrack{
				BaseURL:      t.BaseURL,
				LanguageCode: t.LanguageCode,
				Name:         string(t.Name),
				Kind:         t.Kind,
			})
		}
		if len(tracks) > 0 {
			return tracks
		}
	}
	return nil
}

// unplayableReason reports the playability reason when the response carries one.
func (r *playerResp) unplayableReason() string {
	if r.PlayabilityStatus == nil || r.PlayabilityStatus.Status == "OK" {
		return ""
	}
	if r.PlayabilityStatus.Reason != "" {
		return r.PlayabilityStatus.Reason
	}
	return r.PlayabilityStatus.Status
}
