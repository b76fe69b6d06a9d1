package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/casafind/casafind-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
	ListingHandler *handlers.ListingHandler
	AgentHandler   *handlers.AgentHandler
	StatsHandler   *handlers.StatsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "casafind"
	}
	router.Use(otelgin.Middleware(serviceName))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Listings
		api.POST("/listings", cfg.ListingHandler.Create)
		api.GET("/listings", cfg.ListingHandler.List)
		api.GET("/listings/:id", cfg.ListingHandler.GetByID)
		api.PATCH("/listings/:id", cfg.ListingHandler.Update)
		api.DELETE("/listings/:id", cfg.ListingHandler.Delete)
		api.POST("/listings/:id/views", cfg.ListingHandler.TrackView)
		// Agents
		api.POST("/agents", cfg.AgentHandler.Create)
		api.GET("/agents", cfg.AgentHandler.List)
		api.GET("/agents/:id", cfg.AgentHandler.GetByID)
		api.PUT("/agents/:id", cfg.AgentHandler.Update)
		api.DELETE("/agents/:id", cfg.AgentHandler.Delete)
		// Stats
		api.GET("/stats/active-agents", cfg.StatsHandler.ActiveAgents)
	}

	return router
}
