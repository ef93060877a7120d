package cohere

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"agenthub/internal/providers"
)

func TestChatWithoutKeyReturnsNotConfigured(t *testing.T) {
	c := New(Config{})
	_, err := c.Chat(context.Background(), providers.ChatRequest{UserMessage: "hi"})
	if !errors.Is(err, providers.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestChatSendsPreambleAndParsesText(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"text": "🔮 The stars align!"})
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	resp, err := c.Chat(context.Background(), providers.ChatRequest{
		SystemPrompt: "You are a mystic astrologer.",
		UserMessage:  "read my chart",
		MaxTokens:    1500,
		Temperature:  0.8,
		TopP:         0.9,
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Text != "🔮 The stars align!" {
		t.Fatalf("text = %q", resp.Text)
	}
	if captured["preamble"] != "You are a mystic astrologer." {
		t.Fatalf("preamble = %v", captured["preamble"])
	}
	if captured["message"] != "read my chart" {
		t.Fatalf("message = %v", captured["message"])
	}
	if _, ok := captured["p"]; !ok {
		t.Fatal("missing p in payload")
	}
}

func TestChatEmptyTextBecomesApology(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"text": "   "})
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	resp, err := c.Chat(context.Background(), providers.ChatRequest{UserMessage: "hi"})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Text != providers.EmptyCompletionText {
		t.Fatalf("text = %q", resp.Text)
	}
}

func TestChatUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	_, err := c.Chat(context.Background(), providers.ChatRequest{UserMessage: "hi"})
	var perr *providers.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
	if perr.Provider != Name {
		t.Fatalf("provider = %q", perr.Provider)
	}
}
