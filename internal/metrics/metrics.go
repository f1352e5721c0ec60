package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg              *prometheus.Registry
	Parked           prometheus.Counter
	Restored         prometheus.Counter
	Discarded        prometheus.Counter
	Checkouts        prometheus.Counter
	CheckoutFailures prometheus.Counter
	ActiveSessions   prometheus.Gauge
	BackendLatency   *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	parked := prometheus.NewCounter(prometheus.CounterOpts{Name: "cashier_parked_total"})
	restored := prometheus.NewCounter(prometheus.CounterOpts{Name: "cashier_restored_total"})
	discarded := prometheus.NewCounter(prometheus.CounterOpts{Name: "cashier_discarded_total"})
	checkouts := prometheus.NewCounter(prometheus.CounterOpts{Name: "cashier_checkouts_total"})
	checkoutFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "cashier_checkout_failures_total"})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{Name: "cashier_active_sessions"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cashier_backend_latency_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	r.MustRegister(parked, restored, discarded, checkouts, checkoutFailures, sessions, latency)
	return &Registry{
		reg:              r,
		Parked:           parked,
		Restored:         restored,
		Discarded:        discarded,
		Checkouts:        checkouts,
		CheckoutFailures: checkoutFailures,
		ActiveSessions:   sessions,
		BackendLatency:   latency,
	}
}

// ObserveBackend matches backend.WithLatencyObserver.
func (r *Registry) ObserveBackend(op string, d time.Duration) {
	r.BackendLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
