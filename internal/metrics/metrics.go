package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CheckoutMetrics counts checkout attempts by outcome and tracks how long
// the pipeline takes.
type CheckoutMetrics struct {
	Attempts   *prometheus.CounterVec
	DurationMS *prometheus.HistogramVec
}

func NewCheckoutMetrics() *CheckoutMetrics {
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "simple_commerce",
		Subsystem: "checkout",
		Name:      "attempts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "simple_commerce",
		Subsystem: "checkout",
		Name:      "duration_ms",
		Help:      "Checkout pipeline duration in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"outcome"})

	prometheus.MustRegister(attempts, duration)
	return &CheckoutMetrics{Attempts: attempts, DurationMS: duration}
}

// Observe records one finished checkout attempt.
func (m *CheckoutMetrics) Observe(outcome string, durationMS int64) {
	if m == nil {
		return
	}
	m.Attempts.WithLabelValues(outcome).Inc()
	m.DurationMS.WithLabelValues(outcome).Observe(float64(durationMS))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
