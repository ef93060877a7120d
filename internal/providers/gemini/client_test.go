package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agenthub/internal/providers"
)

func TestChatNotConfigured(t *testing.T) {
	c := New(Config{})
	_, err := c.Chat(context.Background(), providers.ChatRequest{UserMessage: "hi"})
	if !errors.Is(err, providers.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestChatCallsGenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "secret" {
			t.Errorf("api key missing from query")
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"The stars reveal..."}]}}]}`))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "secret", BaseURL: srv.URL})
	resp, err := c.Chat(context.Background(), providers.ChatRequest{
		SystemPrompt: "You are Professor Astrology.",
		UserMessage:  "what does my sign say",
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Text != "The stars reveal..." {
		t.Fatalf("unexpected text %q", resp.Text)
	}
}

func TestParseGenerateContentJoinsParts(t *testing.T) {
	text, err := parseGenerateContent([]byte(`{"candidates":[{"content":{"parts":[{"text":"a"},{"text":"b"}]}}]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if text != "a\nb" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestParseGenerateContentNoCandidates(t *testing.T) {
	text, err := parseGenerateContent([]byte(`{"candidates":[]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}
