package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shutterbook",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	slotsComputed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shutterbook",
			Name:      "slots_computed_total",
			Help:      "Count of bookable slots produced by the generator.",
		},
	)

	fleetDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shutterbook",
			Name:      "fleet_query_duration_seconds",
			Help:      "Duration of fleet-wide availability fan-outs.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	fleetFetchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shutterbook",
			Name:      "fleet_fetch_failures_total",
			Help:      "Count of per-photographer booking fetches that failed during fleet queries.",
		},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shutterbook",
			Name:      "slot_cache_lookups_total",
			Help:      "Count of slot cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, slotsComputed, fleetDuration, fleetFetchFailures, cacheLookups)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func AddSlotsComputed(n int) {
	slotsComputed.Add(float64(n))
}

func ObserveFleetQuery(d time.Duration) {
	fleetDuration.Observe(d.Seconds())
}

func IncFleetFetchFailure() {
	fleetFetchFailures.Inc()
}

func IncCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheLookups.WithLabelValues(outcome).Inc()
}
