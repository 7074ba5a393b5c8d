package main

import (
	"context"
	"fmt"
	"os"

	"github.com/oka8489/migiude-ai-v3/internal/config"
	"github.com/oka8489/migiude-ai-v3/internal/data/db"
	"github.com/oka8489/migiude-ai-v3/internal/data/graph"
	"github.com/oka8489/migiude-ai-v3/internal/data/repos/projects"
	httpH "github.com/oka8489/migiude-ai-v3/internal/http/handlers"
	"github.com/oka8489/migiude-ai-v3/internal/platform/anthropic"
	"github.com/oka8489/migiude-ai-v3/internal/platform/envutil"
	"github.com/oka8489/migiude-ai-v3/internal/platform/logger"
	"github.com/oka8489/migiude-ai-v3/internal/platform/neo4jdb"
	"github.com/oka8489/migiude-ai-v3/internal/server"
	"github.com/oka8489/migiude-ai-v3/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Relational store
	dbService, err := db.NewService(log)
	if err != nil {
		log.Error("DB init failed", "error", err)
		os.Exit(1)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Error("DB auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := dbService.DB()

	// Schema registry
	registryPath := envutil.GetEnv("DATA_SOURCES_PATH", "db/data_sources.json", log)
	registry := config.NewFileRegistry(registryPath, log)

	// Graph store (optional)
	neo4jClient, err := neo4jdb.New(log, registry.Neo4jConfig())
	if err != nil {
		log.Warn("Neo4j init failed, graph mirror disabled", "error", err)
		neo4jClient = nil
	}
	if neo4jClient == nil {
		log.Info("Graph mirror disabled")
	} else {
		defer neo4jClient.Close(context.Background())
	}

	// Repos
	log.Info("Setting up repos...")
	projectRepo := projects.NewProjectRepo(theDB, log)
	designDocRepo := projects.NewDesignDocumentRepo(theDB, log)

	// Services
	log.Info("Setting up services...")
	llm, err := anthropic.NewClient(log)
	if err != nil {
		log.Error("Could not init AnthropicClient", "error", err)
		os.Exit(1)
	}
	graphSyncer := graph.NewSynchronizer(neo4jClient, log)
	extractor := services.NewExtractionService(registry, llm, log)
	allocator := services.NewCodeAllocator(projectRepo, log)
	registration := services.NewRegistrationService(registry, extractor, allocator, projectRepo, graphSyncer, log)
	designDocs := services.NewDesignDocService(registry, extractor, projectRepo, designDocRepo, graphSyncer, log)

	// Handlers
	log.Info("Setting up handlers...")
	projectHandler := httpH.NewProjectHandler(log, registration)
	designDocHandler := httpH.NewDesignDocHandler(log, designDocs)
	dataSourceHandler := httpH.NewDataSourceHandler(log, registry)
	settingsHandler := httpH.NewSettingsHandler(log, registry, graphSyncer)
	healthHandler := httpH.NewHealthHandler()

	// Router
	srv := server.NewServer(server.RouterConfig{
		ProjectHandler:    projectHandler,
		DesignDocHandler:  designDocHandler,
		DataSourceHandler: dataSourceHandler,
		SettingsHandler:   settingsHandler,
		HealthHandler:     healthHandler,
	})

	port := envutil.GetEnv("PORT", "8080", log)
	log.Info("Starting server", "port", port)
	if err := srv.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
