package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes recorded by Validate.
const (
	ResultAccepted  = "accepted"
	ResultRejected  = "rejected"
	ResultMalformed = "malformed"
)

// Metrics holds the Prometheus collectors for submission handling.
type Metrics struct {
	Submissions        *prometheus.CounterVec
	ValidationDuration prometheus.Histogram

	// Config metrics
	ConfigReloads prometheus.Counter
	ConfigFields  prometheus.Gauge
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "betterform",
				Name:      "submissions_total",
				Help:      "Total number of submissions validated, by result",
			},
			[]string{"result"},
		),
		ValidationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "betterform",
				Name:      "validation_duration_seconds",
				Help:      "Time spent reading and validating a submission",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
		),
		ConfigReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "betterform",
				Name:      "config_reloads_total",
				Help:      "Total number of successful form configuration reloads",
			},
		),
		ConfigFields: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "betterform",
				Name:      "config_fields",
				Help:      "Number of fields in the active form configuration",
			},
		),
	}
}
