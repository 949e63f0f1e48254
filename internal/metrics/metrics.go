// Package metrics holds Prometheus instruments that are used across the
// engine.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RouteMatchTotal counts matcher outcomes per addressing mode.
	// mode ∈ {subdirectory, subdomain}, outcome ∈ {hit, miss}.
	RouteMatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compass_route_match_total",
			Help: "Request-matcher outcomes by addressing mode.",
		},
		[]string{"mode", "outcome"})

	SnapshotLoadTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "compass_snapshot_load_total",
			Help: "Cumulative number of directory snapshots loaded.",
		})

	SnapshotLoadErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "compass_snapshot_load_errors_total",
			Help: "Cumulative number of snapshot load errors.",
		})

	SnapshotDirectories = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "compass_snapshot_directories",
			Help: "Directories in the most recent snapshot.",
		})
)

func init() {
	prometheus.MustRegister(
		RouteMatchTotal,
		SnapshotLoadTotal,
		SnapshotLoadErrorsTotal,
		SnapshotDirectories,
	)
}
