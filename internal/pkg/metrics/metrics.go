// Package metrics exposes the Prometheus collectors for the order lifecycle
// and the notification pipeline. They register with the default registry,
// which the HTTP server serves on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrderTransitions counts committed order status changes.
	OrderTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_order_transitions_total",
			Help: "Total number of committed order status transitions",
		},
		[]string{"from", "to"},
	)

	// NotificationsCreated counts notification inserts by type and result (ok|error).
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_notifications_created_total",
			Help: "Total number of notification inserts",
		},
		[]string{"type", "result"},
	)

	// DeliveryAttempts counts email send attempts by outcome (sent|skipped|transient|permanent).
	DeliveryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_notification_delivery_attempts_total",
			Help: "Total number of notification email attempts",
		},
		[]string{"outcome"},
	)

	// NotificationsArchived counts notifications moved to history by delivered (true|false).
	NotificationsArchived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_notifications_archived_total",
			Help: "Total number of notifications moved to history",
		},
		[]string{"delivered"},
	)

	// ArchiveRepairs counts live rows removed by the recovery sweep.
	ArchiveRepairs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_notification_archive_repairs_total",
			Help: "Total number of live notifications removed because history already held them",
		},
	)

	// DeliveryBatchDuration measures one delivery pipeline run.
	DeliveryBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "marketplace_notification_delivery_batch_seconds",
			Help:    "Duration of a notification delivery batch",
			Buckets: prometheus.DefBuckets,
		},
	)

	// HTTPRequests counts served API requests by route template and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "code"},
	)
)
