package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hallconsole"

var (
	once sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Booking API calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Booking API call latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	staleFetches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_fetches_total",
			Help:      "Fetch results discarded because a newer fetch was issued.",
		},
	)

	notices = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notices_total",
			Help:      "Notices shown by kind.",
		},
		[]string{"kind"},
	)

	stateLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_state_loads_total",
			Help:      "Chat state lookups on session start by result.",
		},
		[]string{"result"},
	)
)

// Register registers the collectors with the default registry. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiRequests, apiDuration, staleFetches, notices, stateLoads)
	})
}

// ObserveAPI records one booking API call.
func ObserveAPI(endpoint, outcome string, elapsed time.Duration) {
	apiRequests.WithLabelValues(endpoint, outcome).Inc()
	apiDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func IncStaleFetch() {
	staleFetches.Inc()
}

func IncNotice(kind string) {
	notices.WithLabelValues(kind).Inc()
}

// IncStateLoad counts a chat state lookup; result is "hit", "miss" or "error".
func IncStateLoad(result string) {
	stateLoads.WithLabelValues(result).Inc()
}
