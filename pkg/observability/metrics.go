// Package observability provides Prometheus metrics for monitoring the
// chat service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// ActiveConnections tracks the number of live chat connections.
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pdfchat_connections_active",
			Help: "Active chat connections",
		},
	)

	// MessagesSentTotal counts websocket messages sent by type.
	MessagesSentTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdfchat_messages_sent_total",
			Help: "Messages sent to clients",
		},
		[]string{"type"},
	)

	// SendRetriesTotal counts retried websocket send attempts.
	SendRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pdfchat_send_retries_total",
			Help: "Retried send attempts",
		},
	)

	// SendFailuresTotal counts sends that exhausted all attempts.
	SendFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pdfchat_send_failures_total",
			Help: "Sends that failed after all retries",
		},
	)

	// AnswerDuration records the duration of one question/answer cycle.
	AnswerDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pdfchat_answer_duration_seconds",
			Help:    "Answer cycle duration",
			Buckets: LLMBuckets,
		},
	)

	// DocumentsIngestedTotal counts indexed documents by outcome.
	DocumentsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pdfchat_documents_ingested_total",
			Help: "Documents ingested",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		ActiveConnections,
		MessagesSentTotal,
		SendRetriesTotal,
		SendFailuresTotal,
		AnswerDuration,
		DocumentsIngestedTotal,
	)
}
