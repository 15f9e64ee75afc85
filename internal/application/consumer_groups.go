package application

import (
	"context"
	"sort"
	"time"

	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
)

// ListConsumerGroups lists every consumer group, ordered by group id.
func (s *AdminService) ListConsumerGroups(ctx context.Context) (groups []domain.ConsumerGroupListing, err error) {
	start := time.Now()
	defer func() { s.observe(opListConsumerGroups, start, err) }()

	groups, err = s.driver.ListConsumerGroups(ctx)
	if err != nil {
		return nil, s.transport(opListConsumerGroups, err)
	}
	if groups == nil {
		groups = []domain.ConsumerGroupListing{}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].GroupID < groups[j].GroupID })
	return groups, nil
}

// DescribeConsumerGroups describes the given groups in one driver call.
// Groups the cluster does not know are absent from the result.
func (s *AdminService) DescribeConsumerGroups(ctx context.Context, ids []string) (groups map[string]domain.ConsumerGroupDescription, err error) {
	start := time.Now()
	defer func() { s.observe(opDescribeConsumerGroups, start, err) }()

	ids = normalizeNames(ids)
	if len(ids) == 0 {
		return nil, ErrNoNamesRequested
	}
	groups, err = s.driver.DescribeConsumerGroups(ctx, ids...)
	if err != nil {
		return nil, s.transport(opDescribeConsumerGroups, err)
	}
	if groups == nil {
		groups = map[string]domain.ConsumerGroupDescription{}
	}
	return groups, nil
}

// ConsumerGroupLag computes per-topic lag for the given groups, or for every
// group when ids is empty. Unknown groups are absent from the result.
func (s *AdminService) ConsumerGroupLag(ctx context.Context, ids []string) (lags map[string]domain.GroupLag, err error) {
	start := time.Now()
	defer func() { s.observe(opConsumerGroupLag, start, err) }()

	lags, err = s.driver.ConsumerGroupLag(ctx, normalizeNames(ids)...)
	if err != nil {
		return nil, s.transport(opConsumerGroupLag, err)
	}
	if lags == nil {
		lags = map[string]domain.GroupLag{}
	}
	return lags, nil
}
