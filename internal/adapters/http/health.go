package httpserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexliesenfeld/health"

	"github.com/OliveiraNt/kafka-admin-api/internal/application"
	"github.com/OliveiraNt/kafka-admin-api/internal/config"
)

const healthCacheDuration = time.Second

// newHealthChecker builds the /healthz checker. The cluster set changes on
// reload, so one check walks every configured cluster on each run.
func newHealthChecker(clusterService *application.ClusterService, timeout time.Duration) health.Checker {
	return health.NewChecker(
		health.WithTimeout(timeout),
		health.WithCacheDuration(healthCacheDuration),
		health.WithCheck(health.Check{
			Name:    "kafka",
			Timeout: timeout,
			Check: func(ctx context.Context) error {
				return pingClusters(ctx, clusterService)
			},
		}),
		health.WithCheck(health.Check{
			Name: "certificates",
			Check: func(context.Context) error {
				return checkCertificates(clusterService)
			},
		}),
	)
}

func pingClusters(ctx context.Context, clusterService *application.ClusterService) error {
	var errs []error
	for _, c := range clusterService.ListClusters() {
		svc, err := clusterService.Admin(c.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("cluster %q: %w", c.Name, err))
			continue
		}
		if err := svc.Ping(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkCertificates(clusterService *application.ClusterService) error {
	var errs []error
	for _, c := range clusterService.ListClusters() {
		if c.CertInfo != nil && c.CertInfo.Status == config.CertExpired {
			errs = append(errs, fmt.Errorf("cluster %q: client certificate expired on %s",
				c.Name, c.CertInfo.NotAfter.Format(time.DateOnly)))
		}
	}
	return errors.Join(errs...)
}
