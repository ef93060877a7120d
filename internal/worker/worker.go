// Package worker drains the dispatch audit stream and persists each event
// to the audit store, sealing transcripts when a crypto manager is present.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"agenthub/internal/crypto"
	"agenthub/internal/metrics"
	"agenthub/internal/queue"
	"agenthub/internal/storage"
)

type Worker struct {
	store   *storage.Store
	queue   *queue.StreamQueue
	dedupe  *queue.EventDeduplicator
	crypto  *crypto.Manager
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

type Config struct {
	Store  *storage.Store
	Queue  *queue.StreamQueue
	Dedupe *queue.EventDeduplicator
	// Crypto is optional. When nil, transcripts are stored in plaintext.
	Crypto  *crypto.Manager
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

func New(cfg Config) *Worker {
	m := cfg.Metrics
	if m == nil {
		m = metrics.Global()
	}
	return &Worker{
		store:   cfg.Store,
		queue:   cfg.Queue,
		dedupe:  cfg.Dedupe,
		crypto:  cfg.Crypto,
		logger:  cfg.Logger,
		metrics: m,
	}
}

func (w *Worker) Start(ctx context.Context, concurrency int) error {
	if err := w.queue.EnsureGroup(ctx); err != nil {
		return err
	}
	if concurrency < 1 {
		concurrency = 1
	}

	wg := sync.WaitGroup{}
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			w.consumeLoop(ctx, slot)
		}(i)
	}

	<-ctx.Done()
	wg.Wait()
	return nil
}

func (w *Worker) consumeLoop(ctx context.Context, slot int) {
	log := w.logger.With().Int("slot", slot).Logger()
	for {
		if err := ctx.Err(); err != nil {
			return
		}

		messages, err := w.queue.Read(ctx, 10)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Msg("failed to read audit stream")
			time.Sleep(1 * time.Second)
			continue
		}
		if len(messages) == 0 {
			continue
		}

		for _, msg := range messages {
			if err := w.persistEvent(ctx, msg.Event); err != nil {
				w.metrics.AuditFailed.Inc()
				log.Error().Err(err).Str("event_id", msg.Event.EventID).Msg("failed to persist dispatch event")
				continue
			}
			w.metrics.AuditPersisted.Inc()
			if ackErr := w.queue.Ack(ctx, msg.ID); ackErr != nil {
				log.Error().Err(ackErr).Str("msg_id", msg.ID).Msg("failed to ack message")
			}
		}
	}
}

// persistEvent writes one event to the audit table. Inserts are keyed by
// event id, so redelivered events are harmless even when dedupe is off.
func (w *Worker) persistEvent(ctx context.Context, ev queue.DispatchEvent) error {
	if w.dedupe != nil {
		first, err := w.dedupe.MarkFirst(ctx, ev.EventID)
		if err != nil {
			return fmt.Errorf("dedupe event: %w", err)
		}
		if !first {
			return nil
		}
	}

	message, response := ev.Message, ev.Response
	encrypted := false
	if w.crypto != nil {
		sealed, err := w.crypto.SealString(ev.Message)
		if err != nil {
			return fmt.Errorf("seal message: %w", err)
		}
		message = sealed
		sealed, err = w.crypto.SealString(ev.Response)
		if err != nil {
			return fmt.Errorf("seal response: %w", err)
		}
		response = sealed
		encrypted = true
	}

	warnings := "[]"
	if len(ev.Warnings) > 0 {
		b, err := json.Marshal(ev.Warnings)
		if err != nil {
			return fmt.Errorf("marshal warnings: %w", err)
		}
		warnings = string(b)
	}

	return w.store.InsertDispatch(ctx, storage.DispatchRecord{
		EventID:      ev.EventID,
		Agent:        ev.Agent,
		Provider:     ev.Provider,
		Language:     ev.Language,
		Message:      message,
		Response:     response,
		Encrypted:    encrypted,
		WarningsJSON: warnings,
		LatencyMS:    ev.LatencyMS,
	})
}
