package config

import (
	"testing"
	"time"
)

func TestGetAuthType(t *testing.T) {
	tests := []struct {
		name     string
		config   ClusterConfig
		expected string
	}{
		{name: "no auth", config: ClusterConfig{}, expected: "PLAINTEXT"},
		{name: "TLS disabled is plaintext", config: ClusterConfig{TLS: &TLSConfig{CertFile: "c.pem", KeyFile: "k.pem"}}, expected: "PLAINTEXT"},
		{name: "TLS only", config: ClusterConfig{TLS: &TLSConfig{Enabled: true, CAFile: "ca.pem"}}, expected: "TLS"},
		{name: "mTLS", config: ClusterConfig{TLS: &TLSConfig{Enabled: true, CertFile: "c.pem", KeyFile: "k.pem"}}, expected: "mTLS"},
		{name: "SASL", config: ClusterConfig{SASL: &SASLConfig{Mechanism: "SCRAM-SHA-256"}}, expected: "SASL/SCRAM-SHA-256"},
		{name: "SASL over TLS", config: ClusterConfig{
			TLS:  &TLSConfig{Enabled: true},
			SASL: &SASLConfig{Mechanism: "PLAIN"},
		}, expected: "SASL/PLAIN + TLS"},
		{name: "AWS wins", config: ClusterConfig{
			AWS:  &AWSConfig{IAM: true},
			SASL: &SASLConfig{Mechanism: "PLAIN"},
		}, expected: "AWS IAM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.GetAuthType(); got != tt.expected {
				t.Errorf("GetAuthType() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClusterConfigEqual(t *testing.T) {
	base := ClusterConfig{
		Name:           "dev",
		Brokers:        []string{"a:9092", "b:9092"},
		ClientID:       "x",
		RequestTimeout: time.Second,
		TLS:            &TLSConfig{Enabled: true, CAFile: "ca.pem"},
		SASL:           &SASLConfig{Mechanism: "PLAIN", Username: "u"},
	}

	same := base
	same.Brokers = []string{"b:9092", "a:9092"}
	same.TLS = &TLSConfig{Enabled: true, CAFile: "ca.pem"}
	if !base.Equal(same) {
		t.Error("expected configs with reordered brokers and equal TLS to be equal")
	}

	changes := map[string]func(c *ClusterConfig){
		"brokers":   func(c *ClusterConfig) { c.Brokers = []string{"a:9092"} },
		"client id": func(c *ClusterConfig) { c.ClientID = "y" },
		"timeout":   func(c *ClusterConfig) { c.RequestTimeout = 2 * time.Second },
		"tls":       func(c *ClusterConfig) { c.TLS = &TLSConfig{Enabled: true, CAFile: "other.pem"} },
		"sasl nil":  func(c *ClusterConfig) { c.SASL = nil },
		"aws added": func(c *ClusterConfig) { c.AWS = &AWSConfig{IAM: true} },
	}
	for name, mutate := range changes {
		t.Run(name, func(t *testing.T) {
			other := base
			mutate(&other)
			if base.Equal(other) {
				t.Errorf("expected %s change to be detected", name)
			}
		})
	}
}
