// Package registry constructs provider adapters by name.
package registry

import (
	"fmt"
	"net/http"

	"agenthub/internal/providers"
	"agenthub/internal/providers/anthropic"
	"agenthub/internal/providers/cohere"
	"agenthub/internal/providers/gemini"
	"agenthub/internal/providers/mistral"
	"agenthub/internal/providers/openai"
)

type BuildOptions struct {
	Name       string
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// Names lists every provider the registry can build, in no particular order.
func Names() []string {
	return []string{gemini.Name, openai.Name, mistral.Name, anthropic.Name, cohere.Name}
}

func Build(opts BuildOptions) (providers.Provider, error) {
	switch opts.Name {
	case gemini.Name:
		return gemini.New(gemini.Config{
			APIKey:     opts.APIKey,
			Model:      opts.Model,
			BaseURL:    opts.BaseURL,
			HTTPClient: opts.HTTPClient,
		}), nil
	case openai.Name:
		return openai.New(openai.Config{
			APIKey:     opts.APIKey,
			Model:      opts.Model,
			BaseURL:    opts.BaseURL,
			HTTPClient: opts.HTTPClient,
		}), nil
	case mistral.Name:
		return mistral.New(mistral.Config{
			APIKey:     opts.APIKey,
			Model:      opts.Model,
			BaseURL:    opts.BaseURL,
			HTTPClient: opts.HTTPClient,
		}), nil
	case anthropic.Name:
		return anthropic.New(anthropic.Config{
			APIKey:     opts.APIKey,
			Model:      opts.Model,
			BaseURL:    opts.BaseURL,
			HTTPClient: opts.HTTPClient,
		}), nil
	case cohere.Name:
		return cohere.New(cohere.Config{
			APIKey:     opts.APIKey,
			Model:      opts.Model,
			BaseURL:    opts.BaseURL,
			HTTPClient: opts.HTTPClient,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", opts.Name)
	}
}
