package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"agenthub/internal/config"
	"agenthub/internal/crypto"
	"agenthub/internal/dispatch"
	"agenthub/internal/httpapi"
	"agenthub/internal/metrics"
	"agenthub/internal/persona"
	"agenthub/internal/providers/registry"
	"agenthub/internal/queue"
	"agenthub/internal/simulate"
	"agenthub/internal/storage"
	"agenthub/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogger(cfg.Log.Level)
	log.Info().
		Strs("provider_priority", cfg.Providers.Priority).
		Bool("audit", cfg.Audit.Enabled).
		Bool("rate_limit", cfg.Rate.Enabled).
		Msg("starting agenthub")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m := metrics.Global()
	httpClient := &http.Client{Timeout: cfg.Providers.ClientTimeout}

	named := make([]dispatch.NamedProvider, 0, len(cfg.Providers.Priority))
	for _, name := range cfg.Providers.Priority {
		pc := providerConfig(cfg, name)
		p, err := registry.Build(registry.BuildOptions{
			Name:       name,
			APIKey:     pc.APIKey,
			Model:      pc.Model,
			BaseURL:    pc.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			log.Fatal().Err(err).Str("provider", name).Msg("failed to build provider")
		}
		named = append(named, dispatch.NamedProvider{Name: name, Provider: p})
		log.Info().Str("provider", name).Bool("configured", pc.APIKey != "").Msg("provider registered")
	}

	registryP := persona.NewRegistry()
	dispatcher := dispatch.New(dispatch.Config{
		Registry:       registryP,
		Providers:      named,
		Responder:      simulate.NewResponder(time.Now().UnixNano()),
		AttemptTimeout: cfg.Providers.AttemptTimeout,
		Logger:         log.Logger,
	})

	var rdb *redis.Client
	var rateLimiter *queue.RateLimiter
	var auditQueue *queue.StreamQueue
	if cfg.Audit.Enabled || cfg.Rate.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer rdb.Close()
	}
	if cfg.Rate.Enabled {
		rateLimiter = queue.NewRateLimiter(rdb, cfg.Rate.PerHour)
	}

	errCh := make(chan error, 4)

	var store *storage.Store
	if cfg.Audit.Enabled {
		store, err = storage.Open(ctx, cfg.DB.Driver, cfg.DB.DSN, cfg.DB.AutoMigrate, "migrations")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize storage")
		}
		defer store.Close()

		var cryptoManager *crypto.Manager
		if cfg.Crypto.Enabled() {
			cryptoManager, err = crypto.NewManager(cfg.Crypto.CurrentKeyID, cfg.Crypto.Keys)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to initialize crypto manager")
			}
			log.Info().Str("key_id", cfg.Crypto.CurrentKeyID).Msg("transcript encryption enabled")
		}

		auditQueue = queue.NewStreamQueue(rdb, cfg.Redis.AuditStream, cfg.Redis.AuditGroup, cfg.Worker.ConsumerName, cfg.Redis.QueueBlock)
		w := worker.New(worker.Config{
			Store:   store,
			Queue:   auditQueue,
			Dedupe:  queue.NewEventDeduplicator(rdb, 6*time.Hour),
			Crypto:  cryptoManager,
			Logger:  log.Logger,
			Metrics: m,
		})
		go func() {
			if err := w.Start(ctx, cfg.Worker.Concurrency); err != nil && ctx.Err() == nil {
				errCh <- fmt.Errorf("audit worker failed: %w", err)
			}
		}()
		log.Info().Int("concurrency", cfg.Worker.Concurrency).Msg("audit worker started")
	}

	api := httpapi.NewServer(httpapi.Config{
		Dispatcher:  dispatcher,
		Registry:    registryP,
		AuditQueue:  auditQueue,
		RateLimiter: rateLimiter,
		Store:       store,
		Logger:      log.Logger,
		Metrics:     m,
	})

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.HTTP.HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle(cfg.HTTP.MetricsPath, promhttp.Handler())
	api.Register(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTP.ListenAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("runtime error")
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to stop http server")
	}

	log.Info().Msg("stopped")
}

func providerConfig(cfg *config.Config, name string) config.ProviderConfig {
	switch name {
	case "gemini":
		return cfg.Providers.Gemini
	case "openai":
		return cfg.Providers.OpenAI
	case "mistral":
		return cfg.Providers.Mistral
	case "anthropic":
		return cfg.Providers.Anthropic
	case "cohere":
		return cfg.Providers.Cohere
	default:
		return config.ProviderConfig{}
	}
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLogLevel(level))
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
