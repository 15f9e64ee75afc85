package application

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
	"github.com/OliveiraNt/kafka-admin-api/internal/metrics"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

// Operation names used in errors, logs and metrics.
const (
	opCreateTopic            = "create_topic"
	opListTopics             = "list_topics"
	opDescribeTopics         = "describe_topics"
	opDeleteTopic            = "delete_topic"
	opDescribeCluster        = "describe_cluster"
	opListConsumerGroups     = "list_consumer_groups"
	opDescribeConsumerGroups = "describe_consumer_groups"
	opConsumerGroupLag       = "consumer_group_lag"
	opUnderReplicated        = "find_under_replicated_partitions"
	opPing                   = "ping"
)

const (
	defaultPartitions        int32 = 1
	defaultReplicationFactor int16 = 1
)

// AdminService turns the asynchronous, partially failing driver primitives of
// one cluster into synchronous operations. Every failure is either an
// input-validation sentinel, an *AlreadyExistsError or a *TransportError.
//
// It holds no mutable state and is safe for concurrent use.
type AdminService struct {
	cluster string
	driver  domain.ClusterDriver
}

// NewAdminService creates an admin service for the named cluster.
func NewAdminService(cluster string, driver domain.ClusterDriver) *AdminService {
	return &AdminService{cluster: cluster, driver: driver}
}

// Cluster returns the name of the cluster the service administers.
func (s *AdminService) Cluster() string {
	return s.cluster
}

func (s *AdminService) transport(op string, err error) error {
	return &TransportError{Op: op, Cluster: s.cluster, Err: err}
}

// observe records the outcome of op and logs failures.
func (s *AdminService) observe(op string, start time.Time, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, ErrTopicAlreadyExists):
		outcome = metrics.OutcomeAlreadyExists
	case isValidation(err):
		outcome = metrics.OutcomeInvalid
	default:
		outcome = metrics.OutcomeTransport
	}
	took := time.Since(start)
	metrics.ObserveOperation(s.cluster, op, outcome, took)

	switch outcome {
	case metrics.OutcomeOK:
		utils.Logger.Debug("admin operation", "cluster", s.cluster, "op", op, "took", took)
	case metrics.OutcomeTransport:
		utils.Logger.Error("admin operation failed", "cluster", s.cluster, "op", op, "err", err)
	default:
		utils.Logger.Warn("admin operation rejected", "cluster", s.cluster, "op", op, "err", err)
	}
}

// normalizeNames trims, drops empty entries and de-duplicates, keeping first-seen order.
func normalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func sortedUnique(names []string) []string {
	out := normalizeNames(names)
	sort.Strings(out)
	return out
}
