package application

import (
	"context"
	"errors"
	"time"

	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
	"github.com/OliveiraNt/kafka-admin-api/internal/metrics"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

// FindUnderReplicatedPartitions maps every topic with at least one partition
// whose in-sync set is smaller than its replica set to those partitions'
// ascending indices. Topics deleted between the listing and the describe
// round trip are skipped, and so are topics the cluster fails to describe
// individually (a leader still being elected, a denied topic). Only a failure
// of the listing or of the describe request as a whole fails the scan.
func (s *AdminService) FindUnderReplicatedPartitions(ctx context.Context) (out map[string][]int32, err error) {
	start := time.Now()
	defer func() { s.observe(opUnderReplicated, start, err) }()

	names, err := s.driver.ListTopics(ctx)
	if err != nil {
		return nil, s.transport(opUnderReplicated, err)
	}
	out = make(map[string][]int32)
	names = normalizeNames(names)
	if len(names) == 0 {
		metrics.SetUnderReplicated(s.cluster, 0)
		return out, nil
	}

	topics, err := s.driver.DescribeTopics(ctx, names...)
	var failed domain.TopicErrors
	if errors.As(err, &failed) {
		for _, name := range failed.Names() {
			utils.Logger.Warn("under-replication scan skipped topic", "cluster", s.cluster, "topic", name, "err", failed[name])
		}
		err = nil
	}
	if err != nil {
		return nil, s.transport(opUnderReplicated, err)
	}
	total := 0
	for name, t := range topics {
		if parts := t.UnderReplicatedPartitions(); len(parts) > 0 {
			out[name] = parts
			total += len(parts)
		}
	}
	metrics.SetUnderReplicated(s.cluster, total)
	return out, nil
}
