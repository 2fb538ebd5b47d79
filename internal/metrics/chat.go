package metrics

import "github.com/prometheus/client_golang/prometheus"

// Chat Prometheus metrics.
var (
	ChatRepliesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yojana",
			Name:      "chat_replies_total",
			Help:      "Total number of chat replies by matched rule",
		},
		[]string{"rule"},
	)

	ChatRemoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yojana",
			Name:      "chat_remote_requests_total",
			Help:      "Total number of remote chat responder requests",
		},
		[]string{"provider", "status"},
	)

	ChatRemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "yojana",
			Name:      "chat_remote_request_duration_seconds",
			Help:      "Remote chat responder request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"provider"},
	)

	ChatRemoteErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yojana",
			Name:      "chat_remote_errors_total",
			Help:      "Total remote chat responder errors",
		},
		[]string{"provider", "error_type"},
	)

	ChatReplyCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "yojana",
			Name:      "chat_reply_cache_total",
			Help:      "Remote chat reply cache lookups",
		},
		[]string{"result"},
	)
)

var chatMetricsRegistered bool

// RegisterChatMetrics registers Prometheus chat metrics. Must be called once from main.
func RegisterChatMetrics() {
	if chatMetricsRegistered {
		return
	}
	prometheus.MustRegister(ChatRepliesTotal)
	prometheus.MustRegister(ChatRemoteRequestsTotal)
	prometheus.MustRegister(ChatRemoteRequestDuration)
	prometheus.MustRegister(ChatRemoteErrorsTotal)
	prometheus.MustRegister(ChatReplyCacheTotal)
	chatMetricsRegistered = true
}
