// Anchorr - Media Request and Notification Bridge for Discord
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/anchorr

// Package metrics declares Anchorr's Prometheus collectors. Collectors are
// registered with the default registry through promauto and exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_api_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "anchorr_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "anchorr_api_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Notification coalescing
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_webhook_events_total",
			Help: "Jellyfin webhook events by ingest decision",
		},
		[]string{"decision"}, // ignored_type, ignored_item, unconfigured, scheduled, superseded
	)

	PendingNotifications = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "anchorr_pending_notifications",
			Help: "Coalescing keys currently waiting for their quiet period",
		},
	)

	NotificationsFired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "anchorr_notifications_fired_total",
			Help: "Quiet periods that elapsed and started a publish",
		},
	)

	NotificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_notifications_published_total",
			Help: "Notification publish attempts by result",
		},
		[]string{"result"}, // success, failure, panic
	)

	NotificationPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "anchorr_notification_publish_duration_seconds",
			Help:    "Time from fire to channel send completion",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// Discord interactions
	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_interactions_total",
			Help: "Discord interactions by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	InteractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "anchorr_interaction_duration_seconds",
			Help:    "Time from receipt to terminal response",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"kind"},
	)

	InteractionsAbandoned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "anchorr_interactions_abandoned_total",
			Help: "Responses dropped because the interaction token expired",
		},
	)

	DiscordGatewayConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "anchorr_discord_gateway_connected",
			Help: "1 when the Discord gateway session is ready",
		},
	)

	// Upstream APIs
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "anchorr_upstream_request_duration_seconds",
			Help:    "Outbound API call duration by service",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_upstream_errors_total",
			Help: "Outbound API failures by service and kind",
		},
		[]string{"service", "kind"},
	)

	// Guild store
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "anchorr_store_operation_duration_seconds",
			Help:    "Guild store operation duration",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_store_errors_total",
			Help: "Guild store failures",
		},
		[]string{"operation"},
	)

	// Cache Metrics (General)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "anchorr_cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "anchorr_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "anchorr_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anchorr_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordWebhookDecision counts one ingest decision.
func RecordWebhookDecision(decision string) {
	WebhookEventsTotal.WithLabelValues(decision).Inc()
}

// RecordNotificationPublish records the result of one fired notification.
func RecordNotificationPublish(result string, duration time.Duration) {
	NotificationsPublished.WithLabelValues(result).Inc()
	NotificationPublishDuration.Observe(duration.Seconds())
}

// RecordInteraction records a finished interaction.
func RecordInteraction(kind, outcome string, duration time.Duration) {
	InteractionsTotal.WithLabelValues(kind, outcome).Inc()
	InteractionDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordUpstreamCall records an outbound API call. kind is empty on success.
func RecordUpstreamCall(service, operation, kind string, duration time.Duration) {
	UpstreamRequestDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
	if kind != "" {
		UpstreamErrors.WithLabelValues(service, kind).Inc()
	}
}

// RecordStoreOperation records a guild store call.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation).Inc()
	}
}

// SetGatewayConnected updates the gateway readiness gauge.
func SetGatewayConnected(connected bool) {
	if connected {
		DiscordGatewayConnected.Set(1)
		return
	}
	DiscordGatewayConnected.Set(0)
}

// StatusLabel formats an HTTP status code as a label value.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}
