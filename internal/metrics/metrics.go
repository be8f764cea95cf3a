package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "momoverify_messages_received_total",
		Help: "Total number of SMS messages received on the webhook.",
	})

	MessagesSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "momoverify_messages_saved_total",
		Help: "Total number of messages with a transaction id persisted to the store.",
	})

	MessagesIgnored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "momoverify_messages_ignored_total",
		Help: "Total number of messages ignored because no transaction id was found.",
	})

	Verifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "momoverify_verifications_total",
		Help: "Total number of verification requests, labelled by outcome.",
	}, []string{"status"})

	StoreErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "momoverify_store_errors_total",
		Help: "Total number of failed store operations.",
	})

	VerificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "momoverify_verification_duration_ms",
		Help:    "Verification request latency in milliseconds, including the store lookup.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})
)
