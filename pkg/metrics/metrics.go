package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActiveConnections tracks currently open websocket connections.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_active_connections",
		Help: "Currently open websocket connections.",
	})

	// MessagesDelivered counts individual deliveries, one per recipient.
	MessagesDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_delivered_total",
		Help: "Messages fanned out to room members.",
	})

	// MessagesRejected counts messages blocked by a room policy.
	MessagesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_rejected_total",
		Help: "Messages rejected by a room policy.",
	})

	// PersistFailures counts messages dropped because the store append failed.
	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_persist_failures_total",
		Help: "Messages dropped due to a failed store append.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
