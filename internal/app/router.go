package app

import (
	"github.com/gin-gonic/gin"

	"github.com/vettia/assessment-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:         cfg.ServiceName,
		AllowOrigins:        cfg.AllowOrigins,
		ResolutionHandler:   handlers.Resolution,
		TraitGroupHandler:   handlers.TraitGroup,
		CandidateHandler:    handlers.Candidate,
		AdminAuthMiddleware: middleware.AdminAuth,
	})
}
