package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes. A rejection is a game rule saying no, not a fault.
const (
	outcomeSuccess  = "success"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// CommandMetricsCollector times every request that crosses the mediator
type CommandMetricsCollector struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
}

// NewCommandMetricsCollector creates the dispatch histograms
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		// Session commands hold one mutex and never touch the network, so
		// the buckets sit well below a millisecond at the low end
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "command_duration_seconds",
				Help:      "Time spent handling a command or query",
				Buckets:   []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.025, 0.1},
			},
			[]string{"command", "outcome"},
		),
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "commands_total",
				Help:      "Commands and queries handled, by outcome",
			},
			[]string{"command", "outcome"},
		),
	}
}

// Register adds the collector to the shared registry. A nil registry
// means metrics are off.
func (c *CommandMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, m := range []prometheus.Collector{c.commandDuration, c.commandsTotal} {
		if err := Registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommandExecution observes one dispatch
func (c *CommandMetricsCollector) RecordCommandExecution(command string, seconds float64, outcome string) {
	c.commandDuration.WithLabelValues(command, outcome).Observe(seconds)
	c.commandsTotal.WithLabelValues(command, outcome).Inc()
}
