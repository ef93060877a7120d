// Package httpapi is the public HTTP surface: chat dispatch, agent listing
// and language detection.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"agenthub/internal/dispatch"
	"agenthub/internal/metrics"
	"agenthub/internal/persona"
	"agenthub/internal/prompt"
	"agenthub/internal/queue"
	"agenthub/internal/storage"
)

const maxBodyBytes = 1 << 20

type Config struct {
	Dispatcher *dispatch.Dispatcher
	Registry   *persona.Registry
	// AuditQueue, RateLimiter and Store are optional; nil disables the
	// feature (Store backs the stats endpoints).
	AuditQueue  *queue.StreamQueue
	RateLimiter *queue.RateLimiter
	Store       *storage.Store
	Logger      zerolog.Logger
	Metrics     *metrics.Metrics
}

type Server struct {
	dispatcher *dispatch.Dispatcher
	registry   *persona.Registry
	audit      *queue.StreamQueue
	limiter    *queue.RateLimiter
	store      *storage.Store
	logger     zerolog.Logger
	metrics    *metrics.Metrics
}

func NewServer(cfg Config) *Server {
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = persona.NewRegistry()
	}
	return &Server{
		dispatcher: cfg.Dispatcher,
		registry:   registry,
		audit:      cfg.AuditQueue,
		limiter:    cfg.RateLimiter,
		store:      cfg.Store,
		logger:     cfg.Logger,
		metrics:    m,
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/agents", s.handleAgents)
	mux.HandleFunc("/api/language-detect", s.handleLanguageDetect)
	if s.store != nil {
		mux.HandleFunc("/api/stats", s.handleStats)
		mux.HandleFunc("/api/dispatches", s.handleDispatches)
	}
}

type chatRequest struct {
	Message  string `json:"message"`
	Agent    string `json:"agent"`
	Language string `json:"language"`
	Provider string `json:"provider"`
	// AgentName is a legacy alias for Agent, kept for older clients.
	AgentName           string                  `json:"agentName"`
	Attachments         []prompt.AttachmentMeta `json:"attachments"`
	ConversationHistory []prompt.HistoryEntry   `json:"conversationHistory"`
}

func (r chatRequest) agentID() string {
	if strings.TrimSpace(r.Agent) != "" {
		return r.Agent
	}
	return r.AgentName
}

type chatResponse struct {
	Success  bool     `json:"success"`
	Response string   `json:"response,omitempty"`
	Provider string   `json:"provider,omitempty"`
	Agent    string   `json:"agent,omitempty"`
	Language string   `json:"language,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, chatResponse{Success: false, Error: "method not allowed"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, chatResponse{Success: false, Error: "failed to read request body"})
		return
	}
	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, chatResponse{Success: false, Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, chatResponse{Success: false, Error: "Message is required"})
		return
	}

	if s.limiter != nil {
		allowed, used, resetAt, err := s.limiter.Allow(r.Context(), clientID(r), time.Now())
		if err != nil {
			s.logger.Error().Err(err).Msg("rate limiter unavailable")
		} else if !allowed {
			s.logger.Warn().Str("client", clientID(r)).Int64("used", used).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", resetAt.UTC().Format(http.TimeFormat))
			writeJSON(w, http.StatusTooManyRequests, chatResponse{Success: false, Error: "Rate limit exceeded. Try again later."})
			return
		}
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = prompt.DetectLanguage(req.Message)
	}

	started := time.Now()
	res, err := s.dispatcher.Dispatch(r.Context(), dispatch.Request{
		AgentID:     req.agentID(),
		Message:     req.Message,
		Language:    language,
		History:     req.ConversationHistory,
		Attachments: req.Attachments,
		Provider:    req.Provider,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Client went away; nothing useful to write.
			return
		}
		s.logger.Error().Err(err).Str("agent", req.agentID()).Msg("dispatch failed")
		writeJSON(w, http.StatusInternalServerError, chatResponse{Success: false, Error: "Internal server error"})
		return
	}

	s.enqueueAudit(r, req.Message, res, time.Since(started))

	writeJSON(w, http.StatusOK, chatResponse{
		Success:  true,
		Response: res.Text,
		Provider: res.Provider,
		Agent:    res.Agent,
		Language: res.Language,
		Warnings: res.Warnings,
	})
}

func (s *Server) enqueueAudit(r *http.Request, message string, res dispatch.Result, latency time.Duration) {
	if s.audit == nil {
		return
	}
	_, err := s.audit.Enqueue(r.Context(), queue.DispatchEvent{
		Agent:     res.Agent,
		Provider:  res.Provider,
		Language:  res.Language,
		Message:   message,
		Response:  res.Text,
		Warnings:  res.Warnings,
		LatencyMS: latency.Milliseconds(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("agent", res.Agent).Msg("failed to enqueue audit event")
		return
	}
	s.metrics.AuditEnqueued.Inc()
}

type agentsResponse struct {
	Success bool     `json:"success"`
	Agents  []string `json:"agents"`
	Default string   `json:"default"`
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, chatResponse{Success: false, Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, agentsResponse{
		Success: true,
		Agents:  s.registry.IDs(),
		Default: persona.DefaultAgentID,
	})
}

type languageDetectRequest struct {
	Text string `json:"text"`
}

type languageDetectResponse struct {
	Success      bool   `json:"success"`
	Language     string `json:"language"`
	LanguageName string `json:"languageName"`
	Error        string `json:"error,omitempty"`
}

func (s *Server) handleLanguageDetect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, chatResponse{Success: false, Error: "method not allowed"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, languageDetectResponse{Success: false, Error: "failed to read request body"})
		return
	}
	var req languageDetectRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, languageDetectResponse{Success: false, Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, languageDetectResponse{Success: false, Error: "Text is required"})
		return
	}

	code := prompt.DetectLanguage(req.Text)
	writeJSON(w, http.StatusOK, languageDetectResponse{
		Success:      true,
		Language:     code,
		LanguageName: prompt.LanguageName(code),
	})
}

type statEntry struct {
	Name       string `json:"name"`
	Dispatches int64  `json:"dispatches"`
}

type statsResponse struct {
	Success   bool        `json:"success"`
	Providers []statEntry `json:"providers"`
	Agents    []statEntry `json:"agents"`
	Error     string      `json:"error,omitempty"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, chatResponse{Success: false, Error: "method not allowed"})
		return
	}

	ps, err := s.store.ProviderStats(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load provider stats")
		writeJSON(w, http.StatusInternalServerError, statsResponse{Success: false, Error: "Internal server error"})
		return
	}
	as, err := s.store.AgentStats(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load agent stats")
		writeJSON(w, http.StatusInternalServerError, statsResponse{Success: false, Error: "Internal server error"})
		return
	}

	resp := statsResponse{Success: true, Providers: make([]statEntry, 0, len(ps)), Agents: make([]statEntry, 0, len(as))}
	for _, st := range ps {
		resp.Providers = append(resp.Providers, statEntry{Name: st.Provider, Dispatches: st.Dispatches})
	}
	for _, st := range as {
		resp.Agents = append(resp.Agents, statEntry{Name: st.Agent, Dispatches: st.Dispatches})
	}
	writeJSON(w, http.StatusOK, resp)
}

// dispatchEntry is the audit-row view exposed over HTTP. Transcripts stay out
// of the listing; they may be encrypted at rest.
type dispatchEntry struct {
	EventID   string   `json:"eventId"`
	Agent     string   `json:"agent"`
	Provider  string   `json:"provider"`
	Language  string   `json:"language"`
	Warnings  []string `json:"warnings,omitempty"`
	LatencyMS int64    `json:"latencyMs"`
	CreatedAt string   `json:"createdAt"`
}

type dispatchesResponse struct {
	Success    bool            `json:"success"`
	Dispatches []dispatchEntry `json:"dispatches"`
	Error      string          `json:"error,omitempty"`
}

func (s *Server) handleDispatches(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, chatResponse{Success: false, Error: "method not allowed"})
		return
	}

	limit := uint64(50)
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 64); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	recs, err := s.store.ListRecentDispatches(r.Context(), strings.TrimSpace(r.URL.Query().Get("agent")), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list dispatches")
		writeJSON(w, http.StatusInternalServerError, dispatchesResponse{Success: false, Error: "Internal server error"})
		return
	}

	resp := dispatchesResponse{Success: true, Dispatches: make([]dispatchEntry, 0, len(recs))}
	for _, rec := range recs {
		var warnings []string
		_ = json.Unmarshal([]byte(rec.WarningsJSON), &warnings)
		resp.Dispatches = append(resp.Dispatches, dispatchEntry{
			EventID:   rec.EventID,
			Agent:     rec.Agent,
			Provider:  rec.Provider,
			Language:  rec.Language,
			Warnings:  warnings,
			LatencyMS: rec.LatencyMS,
			CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func clientID(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
