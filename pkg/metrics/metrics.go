package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 后端请求延迟（秒）
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Platform backend request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"endpoint", "method", "status"},
	)

	// 会话过期计数
	SessionEvictionCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_eviction_count",
			Help: "Total number of local sessions evicted by the guard",
		},
	)

	// 通知变更计数
	NotificationMutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_mutation_count",
			Help: "Total number of notification mutations issued",
		},
		[]string{"operation", "status"}, // status: success, failed
	)
)

// RecordBackendRequest 记录后端请求延迟
func RecordBackendRequest(endpoint, method, status string, duration time.Duration) {
	BackendRequestDuration.WithLabelValues(endpoint, method, status).Observe(duration.Seconds())
}

// IncrementSessionEviction 增加会话过期计数
func IncrementSessionEviction() {
	SessionEvictionCount.Inc()
}

// IncrementNotificationMutation 增加通知变更计数
func IncrementNotificationMutation(operation, status string) {
	NotificationMutationCount.WithLabelValues(operation, status).Inc()
}
