package mistral

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

func TestChatParsesFirstChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "♞ Knight to f3, a logical move."}},
			},
		})
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	resp, err := c.Chat(context.Background(), providers.ChatRequest{
		SystemPrompt: "You are a chess master.",
		UserMessage:  "best opening move?",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Text != "♞ Knight to f3, a logical move." {
		t.Fatalf("text = %q", resp.Text)
	}
}

func TestChatNoChoicesBecomesApology(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{}})
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
		http.Error(w, "rate limited", http.StatusTooManyRequests)
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
