package coach

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	coachCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ai_coach_requests_total", Help: "Count of AI coach calls by outcome"},
		[]string{"outcome"},
	)
	coachLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ai_coach_request_duration_seconds",
		Help:    "Latency of AI coach calls",
		Buckets: prometheus.DefBuckets,
	})
)

func init() { prometheus.MustRegister(coachCalls, coachLatency) }

func observe(err error, d time.Duration) {
	coachLatency.Observe(d.Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "transport_error"
		var ue *UpstreamError
		if errors.As(err, &ue) && ue.Status != 0 {
			outcome = "bad_status"
		}
	}
	coachCalls.WithLabelValues(outcome).Inc()
}
