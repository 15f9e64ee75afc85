package config

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"time"
)

// Certificate status values.
const (
	CertValid    = "valid"
	CertWarning  = "warning"
	CertCritical = "critical"
	CertExpired  = "expired"
)

// CertificateInfo holds client certificate validity information.
type CertificateInfo struct {
	NotBefore    time.Time `json:"not_before"`
	NotAfter     time.Time `json:"not_after"`
	DaysToExpiry int       `json:"days_to_expiry"`
	Status       string    `json:"status"`
}

// HasCertificate returns true if the cluster uses a TLS client certificate.
func (c *ClusterConfig) HasCertificate() bool {
	return c.TLS != nil && c.TLS.Enabled && c.TLS.CertFile != ""
}

// GetCertificateInfo parses the client certificate and reports its validity window.
// It returns nil, nil when no certificate is configured or the file is not PEM.
func (c *ClusterConfig) GetCertificateInfo() (*CertificateInfo, error) {
	if !c.HasCertificate() {
		return nil, nil
	}
	raw, err := os.ReadFile(c.TLS.CertFile)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, nil
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	return certificateInfo(cert.NotBefore, cert.NotAfter, time.Now()), nil
}

func certificateInfo(notBefore, notAfter, now time.Time) *CertificateInfo {
	days := int(notAfter.Sub(now).Hours() / 24)
	status := CertValid
	switch {
	case now.After(notAfter):
		status = CertExpired
	case days <= 7:
		status = CertCritical
	case days <= 30:
		status = CertWarning
	}
	return &CertificateInfo{NotBefore: notBefore, NotAfter: notAfter, DaysToExpiry: days, Status: status}
}
