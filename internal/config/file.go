// Package config loads the YAML configuration of the Kafka admin API: the HTTP
// server settings and the clusters it administers, with their connectivity and
// security options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAddr               = ":8080"
	defaultHealthTimeout      = 5 * time.Second
	defaultHealthFeedInterval = 10 * time.Second
)

// ErrInvalidConfig is returned when the configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr               string        `yaml:"addr,omitempty"`
	HealthTimeout      time.Duration `yaml:"health_timeout,omitempty"`
	HealthFeedInterval time.Duration `yaml:"health_feed_interval,omitempty"`
}

// FileConfig is the root of the configuration file.
type FileConfig struct {
	Server   ServerConfig    `yaml:"server"`
	Clusters []ClusterConfig `yaml:"clusters"`
}

// ReadConfig reads, defaults and validates the configuration at path.
func ReadConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults()
	return cfg, cfg.Validate()
}

// ApplyDefaults fills unset server fields and applies the KAFKA_ADMIN_HTTP_ADDR override.
func (c *FileConfig) ApplyDefaults() {
	if addr := strings.TrimSpace(os.Getenv("KAFKA_ADMIN_HTTP_ADDR")); addr != "" {
		c.Server.Addr = addr
	}
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.HealthTimeout <= 0 {
		c.Server.HealthTimeout = defaultHealthTimeout
	}
	if c.Server.HealthFeedInterval <= 0 {
		c.Server.HealthFeedInterval = defaultHealthFeedInterval
	}
}

// Validate checks every cluster has a unique name and at least one broker.
func (c *FileConfig) Validate() error {
	seen := make(map[string]struct{}, len(c.Clusters))
	for i, cl := range c.Clusters {
		if strings.TrimSpace(cl.Name) == "" {
			return fmt.Errorf("%w: cluster #%d has no name", ErrInvalidConfig, i)
		}
		if len(cl.Brokers) == 0 {
			return fmt.Errorf("%w: cluster %q has no brokers", ErrInvalidConfig, cl.Name)
		}
		if _, dup := seen[cl.Name]; dup {
			return fmt.Errorf("%w: cluster %q is defined twice", ErrInvalidConfig, cl.Name)
		}
		seen[cl.Name] = struct{}{}
	}
	return nil
}
