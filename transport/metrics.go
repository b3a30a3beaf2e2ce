package transport

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// call outcomes
const (
	outcomeOK      = "ok"
	outcomeTimeout = "timeout"
	outcomeError   = "error"
)

// Metrics instruments transports. A nil *Metrics records nothing.
type Metrics struct {
	calls   *prometheus.CounterVec
	pending *prometheus.GaugeVec
	events  *prometheus.CounterVec
}

// NewMetrics registers the transport metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tmrpc",
				Subsystem: "transport",
				Name:      "calls_total",
				Help:      "Total number of RPC calls by method and outcome",
			},
			[]string{"transport", "method", "outcome"},
		),
		pending: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "tmrpc",
				Subsystem: "transport",
				Name:      "pending_calls",
				Help:      "Number of calls waiting for their response",
			},
			[]string{"transport"},
		),
		events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tmrpc",
				Subsystem: "transport",
				Name:      "subscription_events_total",
				Help:      "Total number of events pushed to subscriptions",
			},
			[]string{"transport"},
		),
	}
}

func (m *Metrics) observeCall(transport, method string, err error) {
	if m == nil {
		return
	}

	outcome := outcomeOK
	switch {
	case err == nil:
	case errors.Is(err, ErrTimeout):
		outcome = outcomeTimeout
	default:
		outcome = outcomeError
	}
	m.calls.WithLabelValues(transport, method, outcome).Inc()
}

func (m *Metrics) setPending(transport string, n int) {
	if m == nil {
		return
	}
	m.pending.WithLabelValues(transport).Set(float64(n))
}

func (m *Metrics) observeEvent(transport string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(transport).Inc()
}
