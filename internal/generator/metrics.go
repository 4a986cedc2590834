package generator

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the generation run instrumentation.
type Metrics struct {
	Runs     prometheus.Counter
	Failures prometheus.Counter
	Duration prometheus.Histogram
	Switches prometheus.Gauge
}

// NewMetrics builds and registers the generation metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "slurmtopo",
			Name:      "generation_runs_total",
			Help:      "Total number of topology generation runs.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "slurmtopo",
			Name:      "generation_failures_total",
			Help:      "Total number of failed topology generation runs.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "slurmtopo",
			Name:      "generation_duration_seconds",
			Help:      "Duration of topology generation runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		Switches: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "slurmtopo",
			Name:      "rendered_switches",
			Help:      "Number of switch directives in the last rendered topology.",
		}),
	}
	reg.MustRegister(m.Runs, m.Failures, m.Duration, m.Switches)
	return m
}
