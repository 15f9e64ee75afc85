// Package metrics exposes prometheus instrumentation for administrative operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK            = "ok"
	OutcomeAlreadyExists = "already_exists"
	OutcomeInvalid       = "invalid"
	OutcomeTransport     = "transport_failure"
)

// AdminOperations counts administrative operations by cluster, operation and outcome.
var AdminOperations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_admin_operations_total",
		Help: "Total administrative operations by cluster, operation and outcome.",
	},
	[]string{"cluster", "operation", "outcome"},
)

// AdminOperationDuration observes how long each operation waited on the cluster.
var AdminOperationDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_admin_operation_duration_seconds",
		Help:    "Time spent waiting on the cluster per administrative operation.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"cluster", "operation"},
)

// UnderReplicatedPartitions is the partition count of the last under-replication scan per cluster.
var UnderReplicatedPartitions = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "kafka_admin_under_replicated_partitions",
		Help: "Under-replicated partitions found by the last scan of each cluster.",
	},
	[]string{"cluster"},
)

// Registry holds every collector of this package plus the Go and process collectors.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		AdminOperations,
		AdminOperationDuration,
		UnderReplicatedPartitions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// ObserveOperation records one finished operation.
func ObserveOperation(cluster, operation, outcome string, took time.Duration) {
	AdminOperations.WithLabelValues(cluster, operation, outcome).Inc()
	AdminOperationDuration.WithLabelValues(cluster, operation).Observe(took.Seconds())
}

// SetUnderReplicated records the partition count of the last under-replication scan.
func SetUnderReplicated(cluster string, partitions int) {
	UnderReplicatedPartitions.WithLabelValues(cluster).Set(float64(partitions))
}

// ForgetCluster drops the series of a cluster removed from configuration.
func ForgetCluster(cluster string) {
	labels := prometheus.Labels{"cluster": cluster}
	AdminOperations.DeletePartialMatch(labels)
	AdminOperationDuration.DeletePartialMatch(labels)
	UnderReplicatedPartitions.DeletePartialMatch(labels)
}

// Handler serves the registry in the prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
