package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	JobTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maintenance_job_transitions_total",
		Help: "Job status transitions applied",
	}, []string{"to_status"})

	RequisitionDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "requisition_decisions_total",
		Help: "Requisition approval decisions",
	}, []string{"decision"})

	ReturnDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "part_return_decisions_total",
		Help: "Part return approval decisions",
	}, []string{"decision"})

	StockMovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_movements_total",
		Help: "Stock ledger movements by reference type",
	}, []string{"reference_type"})
)
