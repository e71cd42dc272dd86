// Package metrics holds the Prometheus collectors the API exposes on
// /metrics. Collectors are registered on a dedicated registry so tests can
// build as many instances as they like.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/albapepper/flagfantasy/internal/fantasy"
)

const namespace = "flagfantasy"

type Metrics struct {
	Registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	LeaderboardBuilds *prometheus.CounterVec
	SyntheticEntries  prometheus.Counter
	CacheFlushes      prometheus.Counter
	SeasonRefreshes   *prometheus.CounterVec
}

// New builds and registers every collector, plus the Go runtime and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LeaderboardBuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaderboard_builds_total",
			Help:      "Leaderboards computed (cache misses) by division.",
		}, []string{"division"}),
		SyntheticEntries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "synthetic_entries_total",
			Help:      "Synthetic entries generated across all leaderboard builds.",
		}),
		CacheFlushes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_flushes_total",
			Help:      "Response cache flushes triggered by season refreshes.",
		}),
		SeasonRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "season_refreshes_total",
			Help:      "Season view refreshes by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests,
		m.RequestDuration,
		m.LeaderboardBuilds,
		m.SyntheticEntries,
		m.CacheFlushes,
		m.SeasonRefreshes,
	)
	for _, div := range fantasy.Divisions {
		m.LeaderboardBuilds.WithLabelValues(string(div))
	}
	return m
}

// ObserveLeaderboard records one leaderboard build.
func (m *Metrics) ObserveLeaderboard(div fantasy.Division, entries []fantasy.Entry) {
	if m == nil {
		return
	}
	m.LeaderboardBuilds.WithLabelValues(string(div)).Inc()
	synthetic := 0
	for _, e := range entries {
		if e.Synthetic {
			synthetic++
		}
	}
	m.SyntheticEntries.Add(float64(synthetic))
}
