package main

import (
	"github.com/joho/godotenv"

	"github.com/OliveiraNt/kafka-admin-api/cmd"
	"github.com/OliveiraNt/kafka-admin-api/internal/application"
	"github.com/OliveiraNt/kafka-admin-api/internal/config"
	"github.com/OliveiraNt/kafka-admin-api/internal/infrastructure/kafka"
	"github.com/OliveiraNt/kafka-admin-api/internal/infrastructure/repository"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

func main() {
	_ = godotenv.Load()
	utils.InitLogger()

	configPath := cmd.FindConfigPath()
	repo := repository.NewClusterRepository(configPath, kafka.NewFactory())
	defer repo.Close()

	utils.Logger.Info("loading configuration", "path", configPath)
	if err := repo.LoadFromFile(); err != nil {
		utils.Logger.Warn("failed to load config file", "path", configPath, "err", err)
	} else {
		utils.Logger.Info("configuration loaded", "clusters", len(repo.FindAll()))
	}
	if err := repo.Watch(); err != nil {
		utils.Logger.Fatal("failed to start config watcher", "err", err)
	}

	clusterService := application.NewClusterService(repo)
	utils.Logger.Info("application layer initialized")

	srv := repo.Server()
	if srv.Addr == "" {
		fc := config.FileConfig{}
		fc.ApplyDefaults()
		srv = fc.Server
	}
	cmd.StartWeb(clusterService, srv)
}
