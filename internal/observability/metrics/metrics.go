// Package metrics expõe contadores Prometheus de admissão, autenticação e upstream.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "credibility"

// Metrics aceita receptor nil: nesse caso todos os métodos são no-op.
type Metrics struct {
	registry         *prometheus.Registry
	admissions       *prometheus.CounterVec
	authentications  *prometheus.CounterVec
	upstreamOutcomes *prometheus.CounterVec
	upstreamDuration prometheus.Histogram
	responses        *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admission_decisions_total",
			Help:      "Rate limiter decisions by caller class and outcome.",
		}, []string{"class", "outcome"}),
		authentications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_results_total",
			Help:      "Bearer credential verification results.",
		}, []string{"status"}),
		upstreamOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_outcomes_total",
			Help:      "Downstream analysis results by outcome.",
		}, []string{"outcome"}),
		upstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Latency of downstream analysis calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}),
		responses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_responses_total",
			Help:      "HTTP responses by route and status code.",
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.admissions,
		m.authentications,
		m.upstreamOutcomes,
		m.upstreamDuration,
		m.responses,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordAdmission(authenticated, allowed bool) {
	if m == nil {
		return
	}
	class := "anonymous"
	if authenticated {
		class = "authenticated"
	}
	outcome := "allowed"
	if !allowed {
		outcome = "denied"
	}
	m.admissions.WithLabelValues(class, outcome).Inc()
}

func (m *Metrics) RecordAuth(status string) {
	if m == nil {
		return
	}
	m.authentications.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordAnalysis(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamOutcomes.WithLabelValues(outcome).Inc()
	m.upstreamDuration.Observe(d.Seconds())
}

func (m *Metrics) RecordResponse(route string, status int) {
	if m == nil {
		return
	}
	m.responses.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
