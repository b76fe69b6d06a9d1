package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/casafind/casafind-backend/internal/clients/redis"
	"github.com/casafind/casafind-backend/internal/db"
	"github.com/casafind/casafind-backend/internal/handlers"
	"github.com/casafind/casafind-backend/internal/logger"
	"github.com/casafind/casafind-backend/internal/observability"
	"github.com/casafind/casafind-backend/internal/repos"
	"github.com/casafind/casafind-backend/internal/server"
	"github.com/casafind/casafind-backend/internal/services"
	"github.com/casafind/casafind-backend/internal/utils"
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

	// Env
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using process environment")
	}
	sourceTag := utils.GetEnv("SOURCE_TAG", "go", log)
	allowedOrigins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000", log)

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "casafind",
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownOTel(ctx)
	}()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis view store
	log.Info("Setting up view store from main...")
	viewStore, err := redis.NewViewStore(log)
	if err != nil {
		log.Error("Could not init view store", "error", err)
		os.Exit(1)
	}
	defer viewStore.Close()

	// Repos
	log.Info("Setting up repos from main...")
	listingRepo := repos.NewListingRepo(thePG, log)
	agentRepo := repos.NewAgentRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	formatter := services.NewListingFormatter(sourceTag)
	listingService := services.NewListingService(thePG, log, listingRepo, agentRepo, viewStore, formatter)
	agentService := services.NewAgentService(thePG, log, agentRepo)
	statsService := services.NewStatsService(log, listingRepo, agentRepo, viewStore)

	// Handlers
	log.Info("Setting up handlers from main...")
	listingHandler := handlers.NewListingHandler(listingService)
	agentHandler := handlers.NewAgentHandler(agentService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:    "casafind",
		AllowedOrigins: strings.Split(allowedOrigins, ","),
		ListingHandler: listingHandler,
		AgentHandler:   agentHandler,
		StatsHandler:   statsHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
