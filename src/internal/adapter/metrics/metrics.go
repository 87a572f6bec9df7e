package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Total number of ledger operations by outcome",
		},
		[]string{"operation", "result", "code"},
	)

	movedAmountTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_moved_amount_total",
			Help: "Sum of amounts moved by completed transactions",
		},
		[]string{"type"},
	)

	settlementOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_settlement_transactions_total",
			Help: "Pending transactions processed by the settlement job",
		},
		[]string{"status"},
	)

	jobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_job_duration_seconds",
			Help:    "Duration of scheduled ledger jobs",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 15, 60, 300},
		},
		[]string{"job"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)
)

func ObserveOperation(operation string, code string) {
	result := ResultSuccess
	if code != "" {
		result = ResultFailure
	}
	operationsTotal.WithLabelValues(operation, result, code).Inc()
}

func AddMovedAmount(txType string, amount float64) {
	movedAmountTotal.WithLabelValues(txType).Add(amount)
}

func ObserveSettlement(status string) {
	settlementOutcomes.WithLabelValues(status).Inc()
}

func ObserveJob(job string, started time.Time) {
	jobDuration.WithLabelValues(job).Observe(time.Since(started).Seconds())
}

func ObserveHTTP(method, route string, status string, started time.Time) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}
