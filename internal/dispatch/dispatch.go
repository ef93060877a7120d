// Package dispatch runs the provider fallback chain: it resolves the persona
// contract, composes the constrained prompt, then tries each configured
// provider in priority order until one succeeds. When every provider is
// unavailable it falls back to the simulated responder so callers always get
// an in-character reply.
package dispatch

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"agenthub/internal/metrics"
	"agenthub/internal/persona"
	"agenthub/internal/prompt"
	"agenthub/internal/providers"
	"agenthub/internal/simulate"
	"agenthub/internal/validate"
)

const defaultAttemptTimeout = 10 * time.Second

// NamedProvider pairs a provider with the name reported to callers.
type NamedProvider struct {
	Name     string
	Provider providers.Provider
}

type Config struct {
	Registry  *persona.Registry
	Providers []NamedProvider
	Responder *simulate.Responder
	// AttemptTimeout bounds each single provider call, not the whole chain.
	AttemptTimeout time.Duration
	Logger         zerolog.Logger
}

type Request struct {
	AgentID     string
	Message     string
	Language    string
	History     []prompt.HistoryEntry
	Attachments []prompt.AttachmentMeta
	// Provider optionally pins a preferred provider; it is tried first and
	// the rest of the chain still backs it up.
	Provider string
}

type Result struct {
	Text     string
	Provider string
	Agent    string
	Language string
	Warnings []string
}

type Dispatcher struct {
	registry  *persona.Registry
	providers []NamedProvider
	responder *simulate.Responder
	timeout   time.Duration
	log       zerolog.Logger
}

func New(cfg Config) *Dispatcher {
	timeout := cfg.AttemptTimeout
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}
	responder := cfg.Responder
	if responder == nil {
		responder = simulate.NewResponder(time.Now().UnixNano())
	}
	registry := cfg.Registry
	if registry == nil {
		registry = persona.NewRegistry()
	}
	return &Dispatcher{
		registry:  registry,
		providers: cfg.Providers,
		responder: responder,
		timeout:   timeout,
		log:       cfg.Logger,
	}
}

// Dispatch tries each provider in order and returns the first successful
// reply. It returns an error only when ctx is cancelled; provider exhaustion
// degrades to simulation instead.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (Result, error) {
	contract := d.registry.Resolve(req.AgentID)
	system := prompt.Compose(contract, prompt.SituationalContext(req.History, req.Language, req.Attachments))
	m := metrics.Global()
	m.ChatRequests.WithLabelValues(contract.AgentID).Inc()

	chatReq := providers.ChatRequest{
		SystemPrompt:     system,
		UserMessage:      req.Message,
		MaxTokens:        contract.MaxTokens,
		Temperature:      contract.Temperature,
		TopP:             contract.TopP,
		FrequencyPenalty: contract.FrequencyPenalty,
		PresencePenalty:  contract.PresencePenalty,
	}

	for _, p := range d.orderFor(req.Provider) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		m.ProviderAttempts.WithLabelValues(p.Name).Inc()

		attemptCtx, cancel := context.WithTimeout(ctx, d.timeout)
		resp, err := p.Provider.Chat(attemptCtx, chatReq)
		cancel()
		if err == nil {
			return d.finish(contract, Result{
				Text:     resp.Text,
				Provider: p.Name,
				Agent:    contract.AgentID,
				Language: req.Language,
			}), nil
		}
		if errors.Is(err, providers.ErrNotConfigured) {
			d.log.Debug().Str("provider", p.Name).Msg("provider not configured, skipping")
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		m.ProviderFailures.WithLabelValues(p.Name).Inc()
		d.log.Warn().Err(err).Str("provider", p.Name).Str("agent", contract.AgentID).
			Msg("provider attempt failed, trying next")
	}

	m.Simulations.Inc()
	d.log.Info().Str("agent", contract.AgentID).Msg("all providers exhausted, serving simulated response")
	return d.finish(contract, Result{
		Text:     d.responder.Respond(contract.AgentID, req.Language),
		Provider: simulate.ProviderName,
		Agent:    contract.AgentID,
		Language: req.Language,
	}), nil
}

// orderFor returns the attempt order, moving a pinned provider to the front
// when it is part of the chain. Unknown pins are ignored.
func (d *Dispatcher) orderFor(pinned string) []NamedProvider {
	pinned = strings.ToLower(strings.TrimSpace(pinned))
	if pinned == "" {
		return d.providers
	}
	idx := -1
	for i, p := range d.providers {
		if p.Name == pinned {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return d.providers
	}
	out := make([]NamedProvider, 0, len(d.providers))
	out = append(out, d.providers[idx])
	out = append(out, d.providers[:idx]...)
	out = append(out, d.providers[idx+1:]...)
	return out
}

func (d *Dispatcher) finish(contract persona.Contract, res Result) Result {
	report := validate.Validate(contract, res.Text)
	if !report.OK {
		metrics.Global().ValidationWarnings.Add(float64(len(report.Warnings)))
		d.log.Warn().Str("agent", contract.AgentID).Str("provider", res.Provider).
			Strs("warnings", report.Warnings).Msg("response failed persona validation")
	}
	res.Warnings = report.Warnings
	return res
}
