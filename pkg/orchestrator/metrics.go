package orchestrator

import (
	"github.com/glorpus-work/kitctl/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the orchestrator's prometheus counters. A nil *Metrics is a no-op.
type Metrics struct {
	Launched *prometheus.CounterVec
	Rejected *prometheus.CounterVec
	Polls    *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg when it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Launched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kitctl",
			Name:      "operations_launched_total",
			Help:      "Package manager commands handed to the launcher.",
		}, []string{"mode"}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kitctl",
			Name:      "operations_rejected_total",
			Help:      "Requests rejected before anything was launched.",
		}, []string{"mode", "reason"}),
		Polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kitctl",
			Name:      "status_polls_total",
			Help:      "Status polls by effective mode and answer.",
		}, []string{"mode", "status"}),
	}
	if reg != nil {
		reg.MustRegister(m.Launched, m.Rejected, m.Polls)
	}
	return m
}

func (m *Metrics) launched(mode model.Mode) {
	if m != nil {
		m.Launched.WithLabelValues(string(mode)).Inc()
	}
}

func (m *Metrics) rejected(mode model.Mode, reason string) {
	if m != nil {
		m.Rejected.WithLabelValues(string(mode), reason).Inc()
	}
}

func (m *Metrics) polled(mode model.Mode, status model.Status) {
	if m != nil {
		m.Polls.WithLabelValues(string(mode), string(status)).Inc()
	}
}
