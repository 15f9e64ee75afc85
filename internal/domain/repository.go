package domain

import (
	"context"

	"github.com/OliveiraNt/kafka-admin-api/internal/config"
)

// ClusterDriver is the administrative capability of one Kafka cluster.
// Every call blocks until the cluster answers or ctx is done. Failures are
// returned as *DriverError so callers can tell collisions and missing names
// apart from everything else without inspecting wire codes.
type ClusterDriver interface {
	CreateTopics(ctx context.Context, topics ...TopicSpec) error
	ListTopics(ctx context.Context) ([]string, error)
	// DescribeTopics omits names the cluster does not know. When only some
	// names fail, the described topics come back together with a TopicErrors
	// naming the failed ones; any other error comes with a nil map.
	DescribeTopics(ctx context.Context, names ...string) (map[string]Topic, error)
	DeleteTopics(ctx context.Context, names ...string) error
	ClusterID(ctx context.Context) (string, error)
	// Controller returns nil when the cluster reports no controller.
	Controller(ctx context.Context) (*ClusterNode, error)
	Nodes(ctx context.Context) ([]ClusterNode, error)
	ListConsumerGroups(ctx context.Context) ([]ConsumerGroupListing, error)
	// DescribeConsumerGroups omits groups the cluster does not know.
	DescribeConsumerGroups(ctx context.Context, groupIDs ...string) (map[string]ConsumerGroupDescription, error)
	// ConsumerGroupLag computes lag for the given groups, or for all groups when none are given.
	ConsumerGroupLag(ctx context.Context, groupIDs ...string) (map[string]GroupLag, error)
	Ping(ctx context.Context) error
	Close()
}

// DriverFactory creates drivers from cluster configuration.
type DriverFactory interface {
	CreateDriver(cfg config.ClusterConfig) (ClusterDriver, error)
}

// ClusterRepository exposes configured clusters and their drivers.
type ClusterRepository interface {
	FindByName(name string) (config.ClusterConfig, bool)
	FindAll() []config.ClusterConfig
	GetDriver(name string) (ClusterDriver, bool)
}
