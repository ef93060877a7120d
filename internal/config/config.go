package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidPriority    = errors.New("PROVIDER_PRIORITY contains an unknown provider name")
	ErrMissingDatabaseDSN = errors.New("DB_DSN is required when auditing is enabled")
)

type Config struct {
	Providers ProvidersConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	DB        DBConfig
	Worker    WorkerConfig
	Audit     AuditConfig
	Rate      RateConfig
	Crypto    CryptoConfig
	Log       LogConfig
}

// ProviderConfig holds the credentials for one upstream provider. An empty
// APIKey leaves the provider built but unconfigured, so the dispatcher skips
// it at call time.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type ProvidersConfig struct {
	Gemini    ProviderConfig
	OpenAI    ProviderConfig
	Mistral   ProviderConfig
	Anthropic ProviderConfig
	Cohere    ProviderConfig

	// Priority is the fallback order for dispatch.
	Priority []string
	// AttemptTimeout bounds each single provider call.
	AttemptTimeout time.Duration
	ClientTimeout  time.Duration
}

type HTTPConfig struct {
	ListenAddr  string
	HealthPath  string
	MetricsPath string
	ReadTimeout time.Duration
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	AuditStream string
	AuditGroup  string
	QueueBlock  time.Duration
}

type DBConfig struct {
	Driver      string
	DSN         string
	AutoMigrate bool
}

type WorkerConfig struct {
	Concurrency  int
	ConsumerName string
}

type AuditConfig struct {
	Enabled bool
}

type RateConfig struct {
	Enabled bool
	PerHour int64
}

type CryptoConfig struct {
	CurrentKeyID string
	Keys         map[string][]byte
}

// Enabled reports whether transcript encryption keys were provided.
func (c CryptoConfig) Enabled() bool { return len(c.Keys) > 0 }

type LogConfig struct {
	Level string
}

var knownProviders = map[string]bool{
	"gemini": true, "openai": true, "mistral": true, "anthropic": true, "cohere": true,
}

func Load() (*Config, error) {
	cfg := &Config{
		Providers: ProvidersConfig{
			Gemini: ProviderConfig{
				APIKey:  mustEnv("GEMINI_API_KEY", ""),
				Model:   mustEnv("GEMINI_MODEL", ""),
				BaseURL: mustEnv("GEMINI_BASE_URL", ""),
			},
			OpenAI: ProviderConfig{
				APIKey:  mustEnv("OPENAI_API_KEY", ""),
				Model:   mustEnv("OPENAI_MODEL", ""),
				BaseURL: mustEnv("OPENAI_BASE_URL", ""),
			},
			Mistral: ProviderConfig{
				APIKey:  mustEnv("MISTRAL_API_KEY", ""),
				Model:   mustEnv("MISTRAL_MODEL", ""),
				BaseURL: mustEnv("MISTRAL_BASE_URL", ""),
			},
			Anthropic: ProviderConfig{
				APIKey:  mustEnv("ANTHROPIC_API_KEY", ""),
				Model:   mustEnv("ANTHROPIC_MODEL", ""),
				BaseURL: mustEnv("ANTHROPIC_BASE_URL", ""),
			},
			Cohere: ProviderConfig{
				APIKey:  mustEnv("COHERE_API_KEY", ""),
				Model:   mustEnv("COHERE_MODEL", ""),
				BaseURL: mustEnv("COHERE_BASE_URL", ""),
			},
			Priority:       splitCSV(mustEnv("PROVIDER_PRIORITY", "gemini,openai,mistral,anthropic,cohere")),
			AttemptTimeout: mustDuration("PROVIDER_TIMEOUT", 10*time.Second),
			ClientTimeout:  mustDuration("HTTP_TIMEOUT", 30*time.Second),
		},
		HTTP: HTTPConfig{
			ListenAddr:  mustEnv("LISTEN_ADDR", ":8080"),
			HealthPath:  mustEnv("HEALTH_PATH", "/healthz"),
			MetricsPath: mustEnv("METRICS_PATH", "/metrics"),
			ReadTimeout: mustDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			Addr:        mustEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:    mustEnv("REDIS_PASSWORD", ""),
			DB:          mustInt("REDIS_DB", 0),
			AuditStream: mustEnv("AUDIT_STREAM", "agenthub:dispatches"),
			AuditGroup:  mustEnv("AUDIT_GROUP", "agenthub-auditors"),
			QueueBlock:  mustDuration("QUEUE_BLOCK", 5*time.Second),
		},
		DB: DBConfig{
			Driver:      strings.ToLower(mustEnv("DB_DRIVER", "postgres")),
			DSN:         mustEnv("DB_DSN", ""),
			AutoMigrate: mustBool("AUTO_MIGRATE", true),
		},
		Worker: WorkerConfig{
			Concurrency:  mustInt("WORKER_CONCURRENCY", 2),
			ConsumerName: mustEnv("WORKER_CONSUMER_NAME", hostnameOr("auditor")),
		},
		Audit: AuditConfig{
			Enabled: mustBool("AUDIT_ENABLED", false),
		},
		Rate: RateConfig{
			Enabled: mustBool("RATE_LIMIT_ENABLED", false),
			PerHour: int64(mustInt("RATE_LIMIT_PER_HOUR", 60)),
		},
		Log: LogConfig{
			Level: strings.ToLower(mustEnv("LOG_LEVEL", "info")),
		},
	}

	for _, name := range cfg.Providers.Priority {
		if !knownProviders[name] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, name)
		}
	}
	if cfg.Audit.Enabled && cfg.DB.DSN == "" {
		return nil, ErrMissingDatabaseDSN
	}

	cc, err := loadCryptoConfig()
	if err != nil {
		return nil, err
	}
	cfg.Crypto = cc

	return cfg, nil
}

// loadCryptoConfig collects master keys for transcript encryption. Keys are
// optional: with none present, audit rows store plaintext transcripts.
func loadCryptoConfig() (CryptoConfig, error) {
	keysB64 := map[string]string{}

	if raw := mustEnv("MASTER_KEYS_JSON", ""); raw != "" {
		var parsed map[string]string
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return CryptoConfig{}, fmt.Errorf("parse MASTER_KEYS_JSON: %w", err)
		}
		for id, val := range parsed {
			if strings.TrimSpace(id) == "" || strings.TrimSpace(val) == "" {
				continue
			}
			keysB64[id] = val
		}
	}

	current := mustEnv("MASTER_KEY_CURRENT_ID", "")
	if singleton := mustEnv("MASTER_KEY_B64", ""); singleton != "" {
		if current == "" {
			current = "default"
		}
		keysB64[current] = singleton
	}

	if len(keysB64) == 0 {
		return CryptoConfig{}, nil
	}

	keys := make(map[string][]byte, len(keysB64))
	for id, b64 := range keysB64 {
		raw, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return CryptoConfig{}, fmt.Errorf("decode master key %q: %w", id, err)
		}
		if len(raw) != 32 {
			return CryptoConfig{}, fmt.Errorf("master key %q must be 32 bytes after base64 decode", id)
		}
		keys[id] = raw
	}

	if current == "" {
		for id := range keys {
			current = id
			break
		}
	}
	if _, ok := keys[current]; !ok {
		return CryptoConfig{}, fmt.Errorf("MASTER_KEY_CURRENT_ID=%q does not exist in provided keys", current)
	}

	return CryptoConfig{
		CurrentKeyID: current,
		Keys:         keys,
	}, nil
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mustEnv(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func mustInt(key string, def int) int {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func mustBool(key string, def bool) bool {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func mustDuration(key string, def time.Duration) time.Duration {
	v := mustEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func hostnameOr(def string) string {
	h, err := os.Hostname()
	if err != nil || strings.TrimSpace(h) == "" {
		return def
	}
	return h
}
