package main

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the Prometheus instruments for the analyze pipeline.
type metrics struct {
	AnalyzeRequests *prometheus.CounterVec // labels: outcome={ok,invalid,error}
	DataSource      *prometheus.CounterVec // labels: source
	AnalyzeDuration prometheus.Histogram
}

func newMetrics() *metrics {
	m := buildMetrics()
	prometheus.MustRegister(m.AnalyzeRequests, m.DataSource, m.AnalyzeDuration)
	return m
}

// newMetricsForTesting skips registration so tests do not collide on the
// default registry.
func newMetricsForTesting() *metrics { return buildMetrics() }

func buildMetrics() *metrics {
	return &metrics{
		AnalyzeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrokg",
			Name:      "analyze_requests_total",
			Help:      "Analyze requests by outcome.",
		}, []string{"outcome"}),
		DataSource: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agrokg",
			Name:      "data_source_total",
			Help:      "Series provenance by source tag.",
		}, []string{"source"}),
		AnalyzeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agrokg",
			Name:      "analyze_duration_seconds",
			Help:      "Duration of one full analyze pipeline run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
