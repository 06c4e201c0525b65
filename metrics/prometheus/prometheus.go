package prometheusmetrics

import (
	"github.com/prebid/prebid-gpp/config"
	"github.com/prebid/prebid-gpp/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics defines the Prometheus metrics backing the MetricsEngine implementation.
type Metrics struct {
	Registry *prometheus.Registry

	sectionDecodes *prometheus.CounterVec
	requests       *prometheus.CounterVec
}

const (
	sectionLabel = "section"
	statusLabel  = "status"
)

// NewMetrics initializes a new Prometheus metrics instance with preloaded label values.
func NewMetrics(cfg config.PrometheusMetrics) *Metrics {
	metrics := Metrics{}
	metrics.Registry = prometheus.NewRegistry()

	metrics.sectionDecodes = newCounter(cfg, metrics.Registry,
		"section_decodes",
		"Count of GPP sections decoded labeled by section and outcome.",
		[]string{sectionLabel, statusLabel})

	metrics.requests = newCounter(cfg, metrics.Registry,
		"requests",
		"Count of GPP decode requests labeled by outcome.",
		[]string{statusLabel})

	preloadLabelValues(&metrics)

	return &metrics
}

func newCounter(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string) *prometheus.CounterVec {
	opts := prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}
	counter := prometheus.NewCounterVec(opts, labels)
	registry.MustRegister(counter)
	return counter
}

func (m *Metrics) RecordSectionDecode(labels metrics.SectionLabels) {
	m.sectionDecodes.With(prometheus.Labels{
		sectionLabel: labels.Section,
		statusLabel:  string(labels.Status),
	}).Inc()
}

func (m *Metrics) RecordRequest(status metrics.RequestStatus) {
	m.requests.With(prometheus.Labels{
		statusLabel: string(status),
	}).Inc()
}
