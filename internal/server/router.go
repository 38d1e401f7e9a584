package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/vettia/assessment-backend/internal/handlers"
	"github.com/vettia/assessment-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName         string
	AllowOrigins        []string
	ResolutionHandler   *handlers.ResolutionHandler
	TraitGroupHandler   *handlers.TraitGroupHandler
	CandidateHandler    *handlers.CandidateHandler
	AdminAuthMiddleware *middleware.AdminAuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
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
		// Candidate-facing resolution; invite validation happens upstream.
		api.POST("/resolution", cfg.ResolutionHandler.Resolve)
	}

	admin := router.Group("/api")
	admin.Use(cfg.AdminAuthMiddleware.RequireAdmin())
	{
		admin.POST("/candidates", cfg.CandidateHandler.Create)
		admin.GET("/trait-groups/:id", cfg.TraitGroupHandler.GetGroup)
		admin.PUT("/trait-groups/:id/traits", cfg.TraitGroupHandler.ReplaceTraits)
		admin.POST("/trait-groups/:id/traits", cfg.TraitGroupHandler.AppendTrait)
		admin.DELETE("/trait-groups/:id/traits/:traitId", cfg.TraitGroupHandler.RemoveTrait)
		admin.POST("/trait-groups/:id/traits/:traitId/move", cfg.TraitGroupHandler.MoveTrait)
	}

	return router
}
