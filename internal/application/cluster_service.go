package application

import (
	"github.com/OliveiraNt/kafka-admin-api/internal/config"
	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

// ClusterService resolves configured clusters and their admin services.
type ClusterService struct {
	repo domain.ClusterRepository
}

// NewClusterService creates a new cluster service.
func NewClusterService(repo domain.ClusterRepository) *ClusterService {
	return &ClusterService{repo: repo}
}

// ClusterSummary is the configuration-side view of a cluster.
type ClusterSummary struct {
	Name     string                  `json:"name"`
	Brokers  []string                `json:"brokers"`
	AuthType string                  `json:"auth_type"`
	CertInfo *config.CertificateInfo `json:"cert_info,omitempty"`
}

// ListClusters lists all configured clusters.
func (s *ClusterService) ListClusters() []ClusterSummary {
	cfgs := s.repo.FindAll()
	out := make([]ClusterSummary, 0, len(cfgs))
	for _, cfg := range cfgs {
		out = append(out, summarize(cfg))
	}
	return out
}

// GetCluster retrieves a cluster configuration by name.
func (s *ClusterService) GetCluster(name string) (config.ClusterConfig, bool) {
	return s.repo.FindByName(name)
}

// Admin returns the admin service of the named cluster.
func (s *ClusterService) Admin(name string) (*AdminService, error) {
	if _, ok := s.repo.FindByName(name); !ok {
		return nil, ErrClusterNotFound
	}
	driver, ok := s.repo.GetDriver(name)
	if !ok {
		utils.Logger.Warn("admin driver not found", "cluster", name)
		return nil, ErrClusterNotFound
	}
	return NewAdminService(name, driver), nil
}

func summarize(cfg config.ClusterConfig) ClusterSummary {
	sum := ClusterSummary{
		Name:     cfg.Name,
		Brokers:  cfg.Brokers,
		AuthType: cfg.GetAuthType(),
	}
	if cfg.HasCertificate() {
		if info, err := cfg.GetCertificateInfo(); err == nil {
			sum.CertInfo = info
		} else {
			utils.Logger.Warn("get certificate info failed", "cluster", cfg.Name, "err", err)
		}
	}
	return sum
}
