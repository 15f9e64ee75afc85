// Package httpserver exposes the admin operations as a JSON API.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/OliveiraNt/kafka-admin-api/internal/application"
	"github.com/OliveiraNt/kafka-admin-api/internal/config"
	"github.com/OliveiraNt/kafka-admin-api/internal/metrics"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

const shutdownTimeout = 10 * time.Second

// Server provides the HTTP API endpoints for the Kafka admin API.
type Server struct {
	clusterService *application.ClusterService
	checker        health.Checker
	feedInterval   time.Duration
}

// New creates a new HTTP server instance. Unset fields of cfg take the
// configuration defaults.
func New(clusterService *application.ClusterService, cfg config.ServerConfig) *Server {
	fc := config.FileConfig{Server: cfg}
	fc.ApplyDefaults()
	cfg = fc.Server
	return &Server{
		clusterService: clusterService,
		checker:        newHealthChecker(clusterService, cfg.HealthTimeout),
		feedInterval:   cfg.HealthFeedInterval,
	}
}

// Handler builds the router with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Method(http.MethodGet, "/healthz", health.NewHandler(s.checker))
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/clusters", func(r chi.Router) {
		r.Get("/", s.apiListClusters)
		r.Route("/{clusterName}", func(r chi.Router) {
			r.Get("/", s.apiDescribeCluster)

			r.Get("/topics", s.apiListTopics)
			r.Post("/topics", s.apiCreateTopic)
			r.Get("/topics/under-replicated", s.apiUnderReplicated)
			r.Get("/topics/under-replicated/ws", s.wsUnderReplicated)
			r.Get("/topics/{topicName}", s.apiDescribeTopic)
			r.Delete("/topics/{topicName}", s.apiDeleteTopic)
			r.Get("/topic-descriptions", s.apiDescribeTopics)

			r.Get("/consumer-groups", s.apiListConsumerGroups)
			r.Get("/consumer-groups/{groupId}", s.apiDescribeConsumerGroup)
			r.Get("/consumer-groups/{groupId}/lag", s.apiConsumerGroupLag)
		})
	})

	return r
}

// Run serves HTTP on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.Logger.Info("HTTP server shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		utils.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
