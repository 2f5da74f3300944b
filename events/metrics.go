package events

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Observer = (*Metrics)(nil)

// Metrics exports timelock notifications as prometheus metrics.
type Metrics struct {
	events   *prometheus.CounterVec
	minDelay prometheus.Gauge
	pending  prometheus.Gauge
}

// NewMetrics creates the timelock metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "timelock",
				Name:      "events_total",
				Help:      "Total number of timelock notifications by event name.",
			},
			[]string{"event"},
		),
		minDelay: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "timelock",
			Name:      "min_delay",
			Help:      "Current minimum delay in clock units.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "timelock",
			Name:      "pending_operations",
			Help:      "Operations scheduled but neither executed nor cancelled.",
		}),
	}

	for _, c := range []prometheus.Collector{m.events, m.minDelay, m.pending} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register timelock metric: %w", err)
		}
	}

	return m, nil
}

// Notify updates the metrics for ev.
func (m *Metrics) Notify(ev Event) {
	m.events.WithLabelValues(ev.Name()).Inc()

	switch e := ev.(type) {
	case MinDelayChange:
		m.minDelay.Set(float64(e.NewDelay))
	case CallScheduled:
		// one notification per call, count the operation once
		if e.Index == 0 {
			m.pending.Inc()
		}
	case CallExecuted:
		if e.Index == 0 {
			m.pending.Dec()
		}
	case Cancelled:
		m.pending.Dec()
	}
}
