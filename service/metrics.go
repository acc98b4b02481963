package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "membership"

// Metrics are the Prometheus instruments of the registry and the discovery agent.
type Metrics struct {
	Registrations    prometheus.Counter
	RefreshSkipped   prometheus.Counter
	Evictions        prometheus.Counter
	MalformedEntries prometheus.Counter
	RoundFailures    *prometheus.CounterVec
	DiscoveredNodes  prometheus.Gauge
}

// NewMetrics creates the instruments and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "registrations_total",
			Help:      "Own entry writes (initial registration and refreshes).",
		}),
		RefreshSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "refresh_skipped_total",
			Help:      "Reload rounds that kept the own entry because it was younger than the update interval.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "evictions_total",
			Help:      "Expired entries deleted while listing members.",
		}),
		MalformedEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "malformed_entries_total",
			Help:      "Stored values that could not be decoded into a node entry.",
		}),
		RoundFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "round_failures_total",
			Help:      "Failed lifecycle rounds by operation and error code.",
		}, []string{"operation", "code"}),
		DiscoveredNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "discovered_nodes",
			Help:      "Live members returned by the last successful round.",
		}),
	}
	reg.MustRegister(m.Registrations, m.RefreshSkipped, m.Evictions, m.MalformedEntries, m.RoundFailures, m.DiscoveredNodes)
	return m
}
