package app

import (
	"github.com/equilibra/equilibra-backend/internal/http/middleware"
	"github.com/equilibra/equilibra-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, svcs Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, svcs.Auth),
	}
}
