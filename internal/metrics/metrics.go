// Package metrics exposes prometheus instrumentation for report generation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	reg *prometheus.Registry

	ReportsTotal       *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		reg: reg,
		ReportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recruitin_reports_total",
			Help: "Report generation attempts by type and outcome.",
		}, []string{"report_type", "outcome"}),
		GenerationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recruitin_generation_duration_seconds",
			Help:    "Wall time per report generation attempt.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"report_type"}),
	}
}

func (m *Metrics) Observe(reportType string, ok bool, seconds float64) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.ReportsTotal.WithLabelValues(reportType, outcome).Inc()
	m.GenerationDuration.WithLabelValues(reportType).Observe(seconds)
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
