// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// LLMCallDuration tracks text-completion call duration by purpose.
	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_duration_seconds",
			Help:    "Text-completion call duration",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "purpose", "status"},
	)

	// LLMTokensTotal tracks total LLM tokens processed.
	LLMTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total LLM tokens processed",
		},
		[]string{"provider", "direction"},
	)

	// JSONDecodeTotal counts outcomes of decoding JSON out of model output.
	JSONDecodeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_json_decode_total",
			Help: "Outcomes of extracting JSON from model output",
		},
		[]string{"purpose", "outcome"},
	)

	// RecommendationFallbacksTotal counts recommender fallbacks to default scores.
	RecommendationFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_fallbacks_total",
			Help: "Group recommendations answered with the default scoring",
		},
	)

	// BookingsTotal tracks booking attempts by group and outcome.
	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking attempts",
		},
		[]string{"group_id", "outcome"},
	)

	// SessionSeatsRemaining reports remaining seats after the last booking.
	SessionSeatsRemaining = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "session_seats_remaining",
			Help: "Seats left in a session after the most recent booking",
		},
		[]string{"group_id", "session_id"},
	)

	// EventsPublishedTotal tracks events published to NATS.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Domain events published to JetStream",
		},
		[]string{"type", "status"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, route, status string, duration float64) {
	RequestDuration.WithLabelValues(method, route, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, route, status).Inc()
}

// RecordLLMCall records metrics for one text-completion call.
func RecordLLMCall(provider, purpose, status string, duration float64, tokensIn, tokensOut int) {
	LLMCallDuration.WithLabelValues(provider, purpose, status).Observe(duration)
	LLMTokensTotal.WithLabelValues(provider, "in").Add(float64(tokensIn))
	LLMTokensTotal.WithLabelValues(provider, "out").Add(float64(tokensOut))
}

// RecordJSONDecode records whether JSON could be pulled out of a model reply.
func RecordJSONDecode(purpose string, ok bool) {
	outcome := "parsed"
	if !ok {
		outcome = "malformed"
	}
	JSONDecodeTotal.WithLabelValues(purpose, outcome).Inc()
}

// RecordBooking records a booking attempt.
func RecordBooking(groupID, outcome string) {
	BookingsTotal.WithLabelValues(groupID, outcome).Inc()
}

// SetSeatsRemaining records the remaining seats for a session.
func SetSeatsRemaining(groupID, sessionID string, remaining int) {
	SessionSeatsRemaining.WithLabelValues(groupID, sessionID).Set(float64(remaining))
}

// RecordEvent records a publish attempt.
func RecordEvent(eventType string, ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	EventsPublishedTotal.WithLabelValues(eventType, status).Inc()
}

// SSEConnections tracks open chat streams.
var SSEConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "sse_connections_active",
		Help: "Number of open chat streams",
	},
)

// IncrementSSEConnections increments active SSE connections.
func IncrementSSEConnections() {
	SSEConnections.Inc()
}

// DecrementSSEConnections decrements active SSE connections.
func DecrementSSEConnections() {
	SSEConnections.Dec()
}
