package app

import (
	"github.com/gin-gonic/gin"

	internalhttp "github.com/gracefieldhq/celldesk-backend/internal/http"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, h Handlers, mw Middleware) *gin.Engine {
	log.Info("Wiring router...")
	return internalhttp.NewRouter(internalhttp.RouterConfig{
		Log:            log,
		AuthHandler:    h.Auth,
		AuthMiddleware: mw.Auth,

		ProfileHandler:   h.Profile,
		ZoneHandler:      h.Zone,
		AreaHandler:      h.Area,
		CellHandler:      h.Cell,
		MemberHandler:    h.Member,
		MeetingHandler:   h.Meeting,
		AlertHandler:     h.Alert,
		ReportHandler:    h.Report,
		DirectoryHandler: h.Directory,
		AdminHandler:     h.Admin,
		RealtimeHandler:  h.Realtime,

		HealthHandler: h.Health,
	})
}
