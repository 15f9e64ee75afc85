package config

import "time"

// ClusterConfig holds cluster connectivity and security configuration.
type ClusterConfig struct {
	Name           string        `yaml:"name" json:"name"`
	Brokers        []string      `yaml:"brokers" json:"brokers"`
	ClientID       string        `yaml:"client_id,omitempty" json:"client_id,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty" json:"request_timeout,omitempty"`
	TLS            *TLSConfig    `yaml:"tls,omitempty" json:"tls,omitempty"`
	SASL           *SASLConfig   `yaml:"sasl,omitempty" json:"sasl,omitempty"`
	AWS            *AWSConfig    `yaml:"aws,omitempty" json:"aws,omitempty"`
}

// TLSConfig holds TLS related fields.
type TLSConfig struct {
	Enabled            bool   `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	CAFile             string `yaml:"ca_file,omitempty" json:"ca_file,omitempty"`
	CertFile           string `yaml:"cert_file,omitempty" json:"cert_file,omitempty"`
	KeyFile            string `yaml:"key_file,omitempty" json:"key_file,omitempty"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify,omitempty" json:"insecure_skip_verify,omitempty"`
}

// SASLConfig holds SASL configuration. Credentials may be provided inline or via env var names.
type SASLConfig struct {
	Mechanism   string `yaml:"mechanism,omitempty" json:"mechanism,omitempty"` // PLAIN, SCRAM-SHA-256, SCRAM-SHA-512
	Username    string `yaml:"username,omitempty" json:"-"`
	Password    string `yaml:"password,omitempty" json:"-"`
	UsernameEnv string `yaml:"username_env,omitempty" json:"username_env,omitempty"`
	PasswordEnv string `yaml:"password_env,omitempty" json:"password_env,omitempty"`
}

// AWSConfig holds AWS MSK IAM configuration; credentials come from the named env vars or the AWS defaults.
type AWSConfig struct {
	IAM             bool   `yaml:"iam,omitempty" json:"iam,omitempty"`
	Region          string `yaml:"region,omitempty" json:"region,omitempty"`
	AccessKeyEnv    string `yaml:"access_key_env,omitempty" json:"access_key_env,omitempty"`
	SecretKeyEnv    string `yaml:"secret_key_env,omitempty" json:"secret_key_env,omitempty"`
	SessionTokenEnv string `yaml:"session_token_env,omitempty" json:"session_token_env,omitempty"`
}

// GetAuthType returns a human-readable authentication type.
func (c *ClusterConfig) GetAuthType() string {
	tlsOn := c.TLS != nil && c.TLS.Enabled
	switch {
	case c.AWS != nil && c.AWS.IAM:
		return "AWS IAM"
	case c.SASL != nil && c.SASL.Mechanism != "":
		if tlsOn {
			return "SASL/" + c.SASL.Mechanism + " + TLS"
		}
		return "SASL/" + c.SASL.Mechanism
	case tlsOn && c.TLS.CertFile != "" && c.TLS.KeyFile != "":
		return "mTLS"
	case tlsOn:
		return "TLS"
	}
	return "PLAINTEXT"
}

// Equal reports whether two configurations would produce the same connection.
func (c ClusterConfig) Equal(o ClusterConfig) bool {
	if c.Name != o.Name || c.ClientID != o.ClientID || c.RequestTimeout != o.RequestTimeout {
		return false
	}
	if !sameBrokers(c.Brokers, o.Brokers) {
		return false
	}
	return equalPtr(c.TLS, o.TLS) && equalPtr(c.SASL, o.SASL) && equalPtr(c.AWS, o.AWS)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// sameBrokers compares broker lists ignoring order.
func sameBrokers(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	m := make(map[string]int, len(a))
	for _, s := range a {
		m[s]++
	}
	for _, s := range b {
		if m[s] == 0 {
			return false
		}
		m[s]--
	}
	return true
}
