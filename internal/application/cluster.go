package application

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
)

// DescribeCluster fetches the cluster id, controller and nodes concurrently
// and assembles the snapshot once all three have answered.
func (s *AdminService) DescribeCluster(ctx context.Context) (snap domain.ClusterSnapshot, err error) {
	start := time.Now()
	defer func() { s.observe(opDescribeCluster, start, err) }()

	var (
		id         string
		controller *domain.ClusterNode
		nodes      []domain.ClusterNode
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		id, err = s.driver.ClusterID(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		controller, err = s.driver.Controller(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		nodes, err = s.driver.Nodes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ClusterSnapshot{}, s.transport(opDescribeCluster, err)
	}

	if nodes == nil {
		nodes = []domain.ClusterNode{}
	}
	return domain.ClusterSnapshot{
		ID:         id,
		Controller: controller,
		Nodes:      domain.SortNodes(nodes),
	}, nil
}

// Ping checks that the cluster answers a metadata request.
func (s *AdminService) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.observe(opPing, start, err) }()

	if err := s.driver.Ping(ctx); err != nil {
		return s.transport(opPing, err)
	}
	return nil
}
