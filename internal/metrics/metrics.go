package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgw_submissions_total",
			Help: "Lead submissions by outcome",
		},
		[]string{"outcome"}, // accepted|invalid|failed
	)

	DispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadgw_dispatch_total",
			Help: "Provider send attempts by provider and result",
		},
		[]string{"provider", "result"}, // twilio|meta , sent|failed
	)

	DispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "leadgw_dispatch_duration_seconds",
			Help:    "Provider send latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
)

var once sync.Once

// MustRegister registers the collectors on r. Repeated calls are no-ops.
func MustRegister(r prometheus.Registerer) {
	once.Do(func() {
		r.MustRegister(
			SubmissionsTotal,
			DispatchTotal,
			DispatchDuration,
		)
	})
}
