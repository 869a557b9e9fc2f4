// Package metrics exposes the operator's Prometheus metrics on the controller-runtime registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	reconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sftpgo_operator",
			Subsystem: "controller",
			Name:      "reconcile_total",
			Help:      "Total number of reconciliations by kind, result and error reason",
		},
		[]string{"kind", "result", "reason"},
	)

	reconcileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sftpgo_operator",
			Subsystem: "controller",
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10), // 10ms to ~10s
		},
		[]string{"kind"},
	)

	tokenIssuanceTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sftpgo_operator",
			Subsystem: "auth",
			Name:      "token_issuance_total",
			Help:      "Total number of admin token issuances by server and result",
		},
		[]string{"server", "result"},
	)

	apiCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sftpgo_operator",
			Subsystem: "sftpgo",
			Name:      "api_calls_total",
			Help:      "Total number of SFTPGo API calls by server, operation and result",
		},
		[]string{"server", "operation", "result"},
	)

	apiLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sftpgo_operator",
			Subsystem: "sftpgo",
			Name:      "api_latency_seconds",
			Help:      "Latency of SFTPGo API calls in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"server", "operation"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		reconcileTotal,
		reconcileDuration,
		tokenIssuanceTotal,
		apiCallsTotal,
		apiLatency,
	)
}

// RecordReconcile records the outcome of one reconciliation. reason is empty on success.
func RecordReconcile(kind, result, reason string, duration float64) {
	reconcileTotal.WithLabelValues(kind, result, reason).Inc()
	reconcileDuration.WithLabelValues(kind).Observe(duration)
}

// RecordTokenIssuance records an attempt to obtain an admin token.
func RecordTokenIssuance(server string, err error) {
	tokenIssuanceTotal.WithLabelValues(server, resultOf(err)).Inc()
}

// RecordAPICall records a call against the SFTPGo REST API.
func RecordAPICall(server, operation string, err error, latency float64) {
	apiCallsTotal.WithLabelValues(server, operation, resultOf(err)).Inc()
	apiLatency.WithLabelValues(server, operation).Observe(latency)
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
