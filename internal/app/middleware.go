package app

import (
	"github.com/vettia/assessment-backend/internal/middleware"
	"github.com/vettia/assessment-backend/internal/platform/logger"
)

type Middleware struct {
	AdminAuth *middleware.AdminAuthMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		AdminAuth: middleware.NewAdminAuthMiddleware(log, services.AdminToken),
	}
}
