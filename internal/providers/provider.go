package providers

import "context"

// ChatRequest is the provider-agnostic call shape. Adapters translate it into
// their wire format; no provider-specific field ever appears here.
type ChatRequest struct {
	Model            string
	SystemPrompt     string
	UserMessage      string
	MaxTokens        int
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

type ChatResponse struct {
	Text string
}

// Provider issues exactly one outbound call per Chat invocation. Retrying is
// the dispatcher's job, done by moving to the next provider; adapters never
// retry internally.
type Provider interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// EmptyCompletionText replaces an empty provider completion. An empty
// completion counts as a success, not a failure to fall back from.
const EmptyCompletionText = "I apologize, but I could not generate a response."
