package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Callback outcome labels. One per terminal branch of the handshake.
const (
	OutcomeSuccess             = "success"
	OutcomeMissingCodeState    = "missing_code_state"
	OutcomeInvalidState        = "invalid_or_expired_state"
	OutcomeTokenExchangeFailed = "token_exchange_failed"
	OutcomeProfileFetchFailed  = "profile_fetch_failed"
	OutcomeInternalError       = "internal_error"
)

// Metrics holds the Prometheus metrics for the login service. Each instance
// owns its registry so tests can construct them independently.
type Metrics struct {
	registry *prometheus.Registry

	LoginsStartedTotal    prometheus.Counter
	CallbackOutcomesTotal *prometheus.CounterVec
	SessionLookupsTotal   *prometheus.CounterVec
}

// New creates and registers all metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		LoginsStartedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "authfront",
				Name:      "logins_started_total",
				Help:      "Total number of login flows initiated",
			},
		),
		CallbackOutcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authfront",
				Name:      "callback_outcomes_total",
				Help:      "Total number of OAuth callbacks by terminal outcome",
			},
			[]string{"outcome"},
		),
		SessionLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "authfront",
				Name:      "session_lookups_total",
				Help:      "Total number of session lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Handler returns an HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
