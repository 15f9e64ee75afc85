package kafka

import (
	"github.com/OliveiraNt/kafka-admin-api/internal/config"
	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
)

// Factory creates Kafka drivers from configuration.
type Factory struct{}

// NewFactory creates a new driver factory.
func NewFactory() *Factory {
	return &Factory{}
}

// CreateDriver creates a new Kafka driver from configuration.
func (f *Factory) CreateDriver(cfg config.ClusterConfig) (domain.ClusterDriver, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}
