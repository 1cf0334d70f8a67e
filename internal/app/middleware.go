package app

import (
	httpMW "github.com/gracefieldhq/celldesk-backend/internal/http/middleware"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, s.Auth),
	}
}
