package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Reviews counts review writes. A nil *Reviews records nothing.
type Reviews struct {
	upserts     *prometheus.CounterVec
	raceRetries prometheus.Counter
}

// NewReviews registers the review collectors on reg.
func NewReviews(reg prometheus.Registerer) *Reviews {
	m := &Reviews{
		upserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "review_upserts_total",
			Help: "Review upserts by outcome (created, updated, failed)",
		}, []string{"outcome"}),
		raceRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "review_upsert_race_retries_total",
			Help: "Upserts retried after losing the insert race on the product/customer pair",
		}),
	}
	reg.MustRegister(m.upserts, m.raceRetries)
	return m
}

func (m *Reviews) ObserveUpsert(created bool, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.upserts.WithLabelValues("failed").Inc()
	case created:
		m.upserts.WithLabelValues("created").Inc()
	default:
		m.upserts.WithLabelValues("updated").Inc()
	}
}

func (m *Reviews) ObserveRaceRetry() {
	if m == nil {
		return
	}
	m.raceRetries.Inc()
}

// HTTP tracks request latency per route.
type HTTP struct {
	duration *prometheus.HistogramVec
}

func NewHTTP(reg prometheus.Registerer) *HTTP {
	m := &HTTP{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.duration)
	return m
}

func (m *HTTP) Observe(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
