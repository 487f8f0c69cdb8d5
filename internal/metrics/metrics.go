package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gringotts_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gringotts_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gringotts_transactions_total",
			Help: "Total number of committed ledger transactions",
		},
		[]string{"kind"},
	)

	TransferFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gringotts_transfer_failures_total",
			Help: "Total number of rejected or failed transfers",
		},
		[]string{"code"},
	)

	CustomerUpsertsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gringotts_customer_upserts_total",
			Help: "Total number of customer create-or-update calls",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordTransaction(kind string) {
	TransactionsTotal.WithLabelValues(kind).Inc()
}

func RecordTransferFailure(code string) {
	TransferFailuresTotal.WithLabelValues(code).Inc()
}

func RecordCustomerUpsert() {
	CustomerUpsertsTotal.Inc()
}
