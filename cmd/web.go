// Package cmd wires the repository, the application layer and the HTTP server
// of kafka-admin-api and runs them until the process is signalled.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	httpserver "github.com/OliveiraNt/kafka-admin-api/internal/adapters/http"
	"github.com/OliveiraNt/kafka-admin-api/internal/application"
	"github.com/OliveiraNt/kafka-admin-api/internal/config"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

// StartWeb starts the HTTP server using already-initialized application and
// repository layers. It blocks until SIGINT or SIGTERM.
func StartWeb(clusterService *application.ClusterService, cfg config.ServerConfig) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpserver.New(clusterService, cfg)
	utils.Logger.Info("HTTP API starting", "addr", cfg.Addr)
	if err := server.Run(ctx, cfg.Addr); err != nil {
		utils.Logger.Fatal("HTTP API terminated", "err", err)
	}
	utils.Logger.Info("HTTP API stopped")
}
