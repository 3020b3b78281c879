package engine

import (
	"context"
	"testing"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
)

func TestInitDefaults(t *testing.T) {
	old := cfg
	t.Cleanup(func() { cfg = old })

	Init(Config{})

	if Cfg.FetchTimeout != youtube.DefaultFetchTimeout {
		t.Errorf("FetchTimeout = %v", Cfg.FetchTimeout)
	}
	if Cfg.TranscriptTimeout != youtube.DefaultTranscriptTimeout {
		t.Errorf("TranscriptTimeout = %v", Cfg.TranscriptTimeout)
	}
	if Cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q", Cfg.DefaultLanguage)
	}
	if Cfg.SummaryInputChars != 8000 || Cfg.QAInputChars != 6000 {
		t.Errorf("input limits = %d/%d", Cfg.SummaryInputChars, Cfg.QAInputChars)
	}
	if Cfg.HTTPClient == nil || Cfg.Transcripts == nil || Cfg.Searcher == nil {
		t.Fatal("Init left components unwired")
	}
	if Cfg.Complete != nil {
		t.Error("Complete set without an LLM client")
	}
}

func TestInitKeepsInjected(t *testing.T) {
	old := cfg
	t.Cleanup(func() { cfg = old })

	ex := youtube.NewExtractor(youtube.Options{})
	fn := func(context.Context, string) (string, error) { return "ok", nil }
	Init(Config{FetchTimeout: 3 * time.Second, Transcripts: ex, Complete: fn})

	if Cfg.Transcripts != ex {
		t.Error("injected extractor replaced")
	}
	if Cfg.HTTPClient.Timeout != 3*time.Second {
		t.Errorf("HTTPClient.Timeout = %v", Cfg.HTTPClient.Timeout)
	}
	if out, _ := CallLLM(context.Background(), "p"); out != "ok" {
		t.Errorf("CallLLM = %q", out)
	}
}

func TestNewFetcher(t *testing.T) {
	if _, ok := NewFetcher(Config{}).(*youtube.HTTPFetcher); !ok {
		t.Error("default fetcher should be plain HTTP")
	}
	if _, ok := NewFetcher(Config{StealthEnabled: true}).(*youtube.HTTPFetcher); !ok {
		t.Error("stealth without a browser client should fall back to plain HTTP")
	}
	if _, ok := NewFetcher(Config{StealthEnabled: true, BrowserClient: &BrowserClient{}}).(*youtube.StealthFetcher); !ok {
		t.Error("stealth fetcher expected")
	}
}
