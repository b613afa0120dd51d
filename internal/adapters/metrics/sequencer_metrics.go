package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// SequencerMetricsCollector records ship actions, extraction yields and timer waits.
// It satisfies sequencer.Recorder.
type SequencerMetricsCollector struct {
	actionsTotal *prometheus.CounterVec
	yieldUnits   *prometheus.CounterVec
	waitSeconds  *prometheus.HistogramVec
}

// NewSequencerMetricsCollector creates a new sequencer metrics collector
func NewSequencerMetricsCollector() *SequencerMetricsCollector {
	return &SequencerMetricsCollector{
		actionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ship_actions_total",
				Help:      "Total number of remote ship actions by ship, action and status",
			},
			[]string{"ship_symbol", "action", "status"},
		),

		yieldUnits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "extraction_yield_units_total",
				Help:      "Total units extracted by ship and trade good",
			},
			[]string{"ship_symbol", "trade_symbol"},
		),

		// Arrival and cooldown waits; zero-length waits land in the first bucket
		waitSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "wait_seconds",
				Help:      "Time spent waiting on server-reported timers",
				Buckets:   []float64{0, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
			},
			[]string{"kind"},
		),
	}
}

// Register registers all sequencer metrics with the Prometheus registry
func (c *SequencerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.actionsTotal,
		c.yieldUnits,
		c.waitSeconds,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordAction counts one remote ship action
func (c *SequencerMetricsCollector) RecordAction(shipSymbol, action string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	c.actionsTotal.WithLabelValues(shipSymbol, action, status).Inc()
}

// RecordYield adds extracted units
func (c *SequencerMetricsCollector) RecordYield(shipSymbol, tradeSymbol string, units int) {
	if units <= 0 {
		return
	}
	c.yieldUnits.WithLabelValues(shipSymbol, tradeSymbol).Add(float64(units))
}

// RecordWait observes one wait; negative waits are clamped to zero
func (c *SequencerMetricsCollector) RecordWait(kind string, seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	c.waitSeconds.WithLabelValues(kind).Observe(seconds)
}
