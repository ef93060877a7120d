// Package cohere adapts the generic chat request to Cohere's chat wire
// format (message + preamble).
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"agenthub/internal/providers"
)

const Name = "cohere"

const defaultBaseURL = "https://api.cohere.com/v1"

type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

type Client struct {
	cfg Config
}

func New(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = "command-r-plus"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg}
}

var _ providers.Provider = (*Client)(nil)

func (c *Client) Chat(ctx context.Context, req providers.ChatRequest) (providers.ChatResponse, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return providers.ChatResponse{}, providers.NotConfiguredError(Name)
	}

	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}

	payload := map[string]any{
		"model":    model,
		"message":  req.UserMessage,
		"preamble": req.SystemPrompt,
	}
	if req.MaxTokens > 0 {
		payload["max_tokens"] = req.MaxTokens
	}
	if req.Temperature > 0 {
		payload["temperature"] = req.Temperature
	}
	if req.TopP > 0 {
		payload["p"] = req.TopP
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return providers.ChatResponse{}, providers.Errorf(Name, "marshal payload: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return providers.ChatResponse{}, providers.Errorf(Name, "build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return providers.ChatResponse{}, providers.Errorf(Name, "request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return providers.ChatResponse{}, providers.Errorf(Name, "read response body: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return providers.ChatResponse{}, providers.Errorf(Name, "status %d", resp.StatusCode)
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return providers.ChatResponse{}, providers.Errorf(Name, "decode response: %v", err)
	}

	text := parsed.Text
	if strings.TrimSpace(text) == "" {
		text = providers.EmptyCompletionText
	}
	return providers.ChatResponse{Text: text}, nil
}
