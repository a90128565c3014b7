package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the Telegram update loop. Booking API and notice metrics
// live in internal/metrics.
type Metrics struct {
	UpdateProcessingTime prometheus.Histogram
	CommandsProcessed    *prometheus.CounterVec
	ErrorsTotal          prometheus.Counter
	ActiveChats          prometheus.Gauge
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UpdateProcessingTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "telegram_bot_update_processing_time_seconds",
			Help:    "Time spent processing updates",
			Buckets: prometheus.DefBuckets,
		}),
		CommandsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "telegram_bot_commands_processed_total",
			Help: "Commands and callbacks handled, by name",
		}, []string{"command"}),
		ErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "telegram_bot_errors_total",
			Help: "Panics recovered in update handlers",
		}),
		ActiveChats: factory.NewGauge(prometheus.GaugeOpts{
			Name: "telegram_bot_active_chats",
			Help: "Chats with an open console session",
		}),
	}
}

func (m *Metrics) command(name string) {
	if m == nil {
		return
	}
	m.CommandsProcessed.WithLabelValues(name).Inc()
}
