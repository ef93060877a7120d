package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	ChatRequests       *prometheus.CounterVec
	ProviderAttempts   *prometheus.CounterVec
	ProviderFailures   *prometheus.CounterVec
	Simulations        prometheus.Counter
	ValidationWarnings prometheus.Counter
	AuditEnqueued      prometheus.Counter
	AuditPersisted     prometheus.Counter
	AuditFailed        prometheus.Counter
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = &Metrics{
			ChatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "agenthub",
				Name:      "chat_requests_total",
				Help:      "Total chat requests by agent",
			}, []string{"agent"}),
			ProviderAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "agenthub",
				Name:      "provider_attempts_total",
				Help:      "Total upstream provider attempts by provider",
			}, []string{"provider"}),
			ProviderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "agenthub",
				Name:      "provider_failures_total",
				Help:      "Total upstream provider failures by provider",
			}, []string{"provider"}),
			Simulations: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "agenthub",
				Name:      "simulated_responses_total",
				Help:      "Total responses served from the simulated responder",
			}),
			ValidationWarnings: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "agenthub",
				Name:      "validation_warnings_total",
				Help:      "Total persona validation warnings attached to responses",
			}),
			AuditEnqueued: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "agenthub",
				Name:      "audit_enqueued_total",
				Help:      "Total dispatch events enqueued to redis stream",
			}),
			AuditPersisted: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "agenthub",
				Name:      "audit_persisted_total",
				Help:      "Total dispatch events persisted by the audit worker",
			}),
			AuditFailed: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: "agenthub",
				Name:      "audit_failed_total",
				Help:      "Total dispatch events that failed persistence",
			}),
		}
		prometheus.MustRegister(
			global.ChatRequests, global.ProviderAttempts, global.ProviderFailures,
			global.Simulations, global.ValidationWarnings,
			global.AuditEnqueued, global.AuditPersisted, global.AuditFailed,
		)
	})
	return global
}
