package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

// CreateTopic creates one topic. A nil partitions or replicationFactor falls
// back to 1; a provided value must be positive.
func (s *AdminService) CreateTopic(ctx context.Context, name string, partitions *int32, replicationFactor *int16) (err error) {
	start := time.Now()
	defer func() { s.observe(opCreateTopic, start, err) }()

	spec := domain.TopicSpec{
		Name:              strings.TrimSpace(name),
		Partitions:        defaultPartitions,
		ReplicationFactor: defaultReplicationFactor,
	}
	if spec.Name == "" {
		return ErrInvalidTopicName
	}
	if partitions != nil {
		if *partitions <= 0 {
			return ErrInvalidPartitionCount
		}
		spec.Partitions = *partitions
	}
	if replicationFactor != nil {
		if *replicationFactor <= 0 {
			return ErrInvalidReplicationFactor
		}
		spec.ReplicationFactor = *replicationFactor
	}

	if err := s.driver.CreateTopics(ctx, spec); err != nil {
		if errors.Is(err, domain.ErrTopicExists) {
			return &AlreadyExistsError{Topic: spec.Name}
		}
		return s.transport(opCreateTopic, err)
	}
	utils.Logger.Info("topic created", "cluster", s.cluster, "topic", spec.Name,
		"partitions", spec.Partitions, "replication_factor", spec.ReplicationFactor)
	return nil
}

// ListTopics returns the sorted names of the cluster's non-internal topics.
func (s *AdminService) ListTopics(ctx context.Context) (names []string, err error) {
	start := time.Now()
	defer func() { s.observe(opListTopics, start, err) }()

	listed, err := s.driver.ListTopics(ctx)
	if err != nil {
		return nil, s.transport(opListTopics, err)
	}
	return sortedUnique(listed), nil
}

// DescribeTopics describes the named topics in one driver call. Names the
// cluster does not know are absent from the result; any other failure fails
// the whole batch.
func (s *AdminService) DescribeTopics(ctx context.Context, names []string) (topics map[string]domain.Topic, err error) {
	start := time.Now()
	defer func() { s.observe(opDescribeTopics, start, err) }()

	names = normalizeNames(names)
	if len(names) == 0 {
		return nil, ErrNoNamesRequested
	}
	return s.describeTopics(ctx, opDescribeTopics, names)
}

func (s *AdminService) describeTopics(ctx context.Context, op string, names []string) (map[string]domain.Topic, error) {
	described, err := s.driver.DescribeTopics(ctx, names...)
	if err != nil {
		return nil, s.transport(op, err)
	}
	out := make(map[string]domain.Topic, len(described))
	for name, t := range described {
		domain.SortPartitions(t.Partitions)
		out[name] = t
	}
	return out, nil
}

// DeleteTopic deletes one topic. Deleting an unknown topic is a transport
// failure whose cause matches domain.ErrNotFound.
func (s *AdminService) DeleteTopic(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() { s.observe(opDeleteTopic, start, err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidTopicName
	}
	if err := s.driver.DeleteTopics(ctx, name); err != nil {
		return s.transport(opDeleteTopic, err)
	}
	utils.Logger.Info("topic deleted", "cluster", s.cluster, "topic", name)
	return nil
}
