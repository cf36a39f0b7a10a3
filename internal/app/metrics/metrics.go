package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the data layer's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	dispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barn_client",
			Subsystem: "gateway",
			Name:      "dispatches_total",
			Help:      "Total gateway dispatches by execution mode and outcome.",
		},
		[]string{"mode", "method", "outcome"},
	)

	dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "barn_client",
			Subsystem: "gateway",
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of gateway dispatches.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"mode"},
	)

	healthProbes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barn_client",
			Subsystem: "connectivity",
			Name:      "health_probes_total",
			Help:      "Total health probes by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(dispatches, dispatchDuration, healthProbes)
}

// ObserveDispatch records one gateway dispatch.
func ObserveDispatch(mode, method string, success bool, elapsed time.Duration) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	dispatches.WithLabelValues(mode, method, outcome).Inc()
	dispatchDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// ObserveHealthProbe records one connectivity probe.
func ObserveHealthProbe(reachable bool) {
	result := "reachable"
	if !reachable {
		result = "unreachable"
	}
	healthProbes.WithLabelValues(result).Inc()
}

// Handler exposes the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
