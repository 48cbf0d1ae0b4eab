package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	TransactionsCommitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickpos_transactions_committed_total",
		Help: "Committed transactions by payment method",
	}, []string{"payment_method"})

	SalesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickpos_sales_total",
		Help: "Total value of committed transactions",
	})

	CommitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickpos_commit_rejections_total",
		Help: "Checkout commits rejected at validation",
	}, []string{"reason"})

	ActivePaymentSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quickpos_active_payment_sessions",
		Help: "Payment sessions currently pending or confirming",
	})

	PaymentSessionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickpos_payment_session_outcomes_total",
		Help: "Terminal payment session outcomes",
	}, []string{"outcome"})

	ShiftsOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickpos_shifts_opened_total",
		Help: "Shifts opened",
	})

	ShiftsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickpos_shifts_closed_total",
		Help: "Shifts closed",
	})

	// Infrastructure metrics
	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quickpos_database_latency_seconds",
		Help:    "Latency of repository writes",
		Buckets: prometheus.DefBuckets,
	})

	ProviderPollLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quickpos_provider_poll_latency_seconds",
		Help:    "Latency of payment provider status polls",
		Buckets: prometheus.DefBuckets,
	})
)
