package kafka

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OliveiraNt/kafka-admin-api/internal/config"
	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
)

func TestFactoryCreateDriver(t *testing.T) {
	f := NewFactory()

	var d domain.ClusterDriver
	d, err := f.CreateDriver(config.ClusterConfig{Name: "local", Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)
	require.IsType(t, &Client{}, d)
	d.Close()

	d, err = f.CreateDriver(config.ClusterConfig{Name: "bad", SASL: &config.SASLConfig{Mechanism: "nope"}})
	require.Error(t, err)
	require.Nil(t, d)
}
