package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gyaneshwarpardhi/activities/internal/event"
)

var (
	RosterOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activities_roster_operations_total",
		Help: "Enroll and withdraw calls, labelled by operation, activity and outcome.",
	}, []string{"operation", "activity", "outcome"})

	RosterSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "activities_roster_size",
		Help: "Current number of participants enrolled, labelled by activity.",
	}, []string{"activity"})

	CatalogReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "activities_catalog_reloads_total",
		Help: "Catalog reload attempts, labelled by status.",
	}, []string{"status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "activities_http_request_duration_seconds",
		Help:    "HTTP request latency, labelled by method, route and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveRoster keeps RosterSize in step with registry change events.
func ObserveRoster(ev event.RosterEvent) {
	RosterSize.WithLabelValues(ev.Activity).Set(float64(ev.RosterSize))
}
