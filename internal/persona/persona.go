// Package persona holds the static agent catalog: per-agent behavioral
// contracts (system prompt plus sampling parameters) keyed by agent id.
package persona

import (
	"sort"
	"strings"
)

// DefaultAgentID is the pinned fallback persona. Every lookup miss resolves
// here so the dispatch pipeline always has a contract to enforce.
const DefaultAgentID = "random"

// Contract is the immutable behavioral contract for one agent.
type Contract struct {
	AgentID          string
	SystemPrompt     string
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
	MaxTokens        int

	// Expected response length band in characters; zero means unset.
	MinExpectedLength int
	MaxExpectedLength int
}

type sampling struct {
	temperature      float64
	topP             float64
	frequencyPenalty float64
	presencePenalty  float64
	maxTokens        int
	minLen           int
	maxLen           int
}

var agentSampling = map[string]sampling{
	"comedy-king":         {temperature: 0.9, topP: 0.95, frequencyPenalty: 0.4, presencePenalty: 0.4, maxTokens: 1500, minLen: 200},
	"drama-queen":         {temperature: 0.85, topP: 0.95, frequencyPenalty: 0.4, presencePenalty: 0.4, maxTokens: 1500, minLen: 150},
	"lazy-pawn":           {temperature: 0.6, topP: 0.9, frequencyPenalty: 0.2, presencePenalty: 0.1, maxTokens: 500, maxLen: 600},
	"rook-jokey":          {temperature: 0.8, topP: 0.9, frequencyPenalty: 0.3, presencePenalty: 0.3, maxTokens: 1200},
	"emma-emotional":      {temperature: 0.8, topP: 0.9, frequencyPenalty: 0.3, presencePenalty: 0.3, maxTokens: 1200},
	"julie-girlfriend":    {temperature: 0.85, topP: 0.9, frequencyPenalty: 0.3, presencePenalty: 0.3, maxTokens: 1200},
	"mrs-boss":            {temperature: 0.5, topP: 0.85, frequencyPenalty: 0.2, presencePenalty: 0.2, maxTokens: 1200},
	"knight-logic":        {temperature: 0.8, topP: 0.9, frequencyPenalty: 0.3, presencePenalty: 0.3, maxTokens: 1500},
	"tech-wizard":         {temperature: 0.8, topP: 0.9, frequencyPenalty: 0.4, presencePenalty: 0.4, maxTokens: 1500},
	"chef-biew":           {temperature: 0.85, topP: 0.95, frequencyPenalty: 0.3, presencePenalty: 0.3, maxTokens: 1500},
	"bishop-burger":       {temperature: 0.8, topP: 0.9, frequencyPenalty: 0.3, presencePenalty: 0.3, maxTokens: 1500},
	"professor-astrology": {temperature: 0.8, topP: 0.9, frequencyPenalty: 0.3, presencePenalty: 0.3, maxTokens: 1500},
	"fitness-guru":        {temperature: 0.75, topP: 0.9, frequencyPenalty: 0.3, presencePenalty: 0.3, maxTokens: 1200, minLen: 100},
	"travel-buddy":        {temperature: 0.85, topP: 0.95, frequencyPenalty: 0.3, presencePenalty: 0.3, maxTokens: 1500},
	"einstein":            {temperature: 0.75, topP: 0.85, frequencyPenalty: 0.1, presencePenalty: 0.1, maxTokens: 2000},
	"chess-player":        {temperature: 0.7, topP: 0.85, frequencyPenalty: 0.2, presencePenalty: 0.2, maxTokens: 1500},
	"ben-sega":            {temperature: 0.85, topP: 0.9, frequencyPenalty: 0.3, presencePenalty: 0.3, maxTokens: 1500},
	"nid-gaming":          {temperature: 0.85, topP: 0.95, frequencyPenalty: 0.4, presencePenalty: 0.4, maxTokens: 1200},
	DefaultAgentID:        {temperature: 0.7, topP: 0.9, frequencyPenalty: 0.3, presencePenalty: 0.3, maxTokens: 1500},
}

// Registry is a read-only lookup of agent contracts, built once at startup.
type Registry struct {
	contracts map[string]Contract
}

func NewRegistry() *Registry {
	contracts := make(map[string]Contract, len(systemPrompts))
	for id, prompt := range systemPrompts {
		s, ok := agentSampling[id]
		if !ok {
			s = agentSampling[DefaultAgentID]
		}
		contracts[id] = Contract{
			AgentID:           id,
			SystemPrompt:      prompt,
			Temperature:       s.temperature,
			TopP:              s.topP,
			FrequencyPenalty:  s.frequencyPenalty,
			PresencePenalty:   s.presencePenalty,
			MaxTokens:         s.maxTokens,
			MinExpectedLength: s.minLen,
			MaxExpectedLength: s.maxLen,
		}
	}
	return &Registry{contracts: contracts}
}

// Resolve returns the contract for agentID, or the default persona's contract
// when the id is empty or unknown. It never fails.
func (r *Registry) Resolve(agentID string) Contract {
	id := strings.ToLower(strings.TrimSpace(agentID))
	if c, ok := r.contracts[id]; ok {
		return c
	}
	return r.contracts[DefaultAgentID]
}

// Known reports whether agentID maps to a catalog entry (without the default
// fallback applied).
func (r *Registry) Known(agentID string) bool {
	_, ok := r.contracts[strings.ToLower(strings.TrimSpace(agentID))]
	return ok
}

// IDs returns the sorted agent catalog.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.contracts))
	for id := range r.contracts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
