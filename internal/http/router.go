package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	httpH "github.com/gracefieldhq/celldesk-backend/internal/http/handlers"
	httpMW "github.com/gracefieldhq/celldesk-backend/internal/http/middleware"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	ProfileHandler   *httpH.ProfileHandler
	ZoneHandler      *httpH.ZoneHandler
	AreaHandler      *httpH.AreaHandler
	CellHandler      *httpH.CellHandler
	MemberHandler    *httpH.MemberHandler
	MeetingHandler   *httpH.MeetingHandler
	AlertHandler     *httpH.AlertHandler
	ReportHandler    *httpH.ReportHandler
	DirectoryHandler *httpH.DirectoryHandler
	AdminHandler     *httpH.AdminHandler
	RealtimeHandler  *httpH.RealtimeHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": gin.H{"message": "method not allowed", "code": "method_not_allowed"},
		})
	})
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.CORS())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	// Hierarchy and alert writes are admin actions; meeting recording is the
	// one write a leader performs, scope-checked inside the service.
	superAdmin := httpMW.RequireRole(domain.RoleSuperAdmin)

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/refresh", cfg.AuthHandler.Refresh)
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/sse/stream", cfg.RealtimeHandler.SSEStream)
		}

		// Profiles
		if cfg.ProfileHandler != nil {
			protected.GET("/me", cfg.ProfileHandler.GetMe)
			protected.GET("/profiles", cfg.ProfileHandler.List)
			protected.GET("/profiles/:id", cfg.ProfileHandler.GetByID)
		}

		// Hierarchy
		if cfg.ZoneHandler != nil {
			protected.GET("/zones", cfg.ZoneHandler.List)
			protected.POST("/zones", superAdmin, cfg.ZoneHandler.Create)
			protected.PATCH("/zones/:id", superAdmin, cfg.ZoneHandler.Update)
		}
		if cfg.AreaHandler != nil {
			protected.GET("/areas", cfg.AreaHandler.List)
			protected.POST("/areas", superAdmin, cfg.AreaHandler.Create)
			protected.PATCH("/areas/:id", superAdmin, cfg.AreaHandler.Update)
			protected.DELETE("/areas/:id", superAdmin, cfg.AreaHandler.Delete)
		}
		if cfg.CellHandler != nil {
			protected.GET("/cells", cfg.CellHandler.List)
			protected.POST("/cells", superAdmin, cfg.CellHandler.Create)
			protected.PATCH("/cells/:id", superAdmin, cfg.CellHandler.Update)
			protected.DELETE("/cells/:id", superAdmin, cfg.CellHandler.Delete)
		}
		if cfg.MemberHandler != nil {
			protected.GET("/members", cfg.MemberHandler.List)
			protected.POST("/members", superAdmin, cfg.MemberHandler.Create)
			protected.PATCH("/members/:id", superAdmin, cfg.MemberHandler.Update)
			protected.DELETE("/members/:id", superAdmin, cfg.MemberHandler.Delete)
		}
		if cfg.MeetingHandler != nil {
			protected.GET("/meetings", cfg.MeetingHandler.List)
			protected.POST("/meetings", cfg.MeetingHandler.Record)
			protected.PATCH("/meetings/:id", cfg.MeetingHandler.Update)
			protected.DELETE("/meetings/:id", superAdmin, cfg.MeetingHandler.Delete)
		}

		// Alerts
		if cfg.AlertHandler != nil {
			protected.GET("/alerts", cfg.AlertHandler.List)
			protected.POST("/alerts", superAdmin, cfg.AlertHandler.Create)
			protected.DELETE("/alerts/:id", superAdmin, cfg.AlertHandler.Delete)
		}

		// Reports
		if cfg.ReportHandler != nil {
			protected.GET("/reports/summary", cfg.ReportHandler.Summary)
		}

		// Directory snapshot
		if cfg.DirectoryHandler != nil {
			protected.GET("/directory", cfg.DirectoryHandler.Get)
			protected.POST("/directory/reload", cfg.DirectoryHandler.Reload)
		}
	}

	admin := protected.Group("/admin")
	{
		admin.Use(httpMW.RequireRole(domain.RoleSuperAdmin))
		if cfg.AdminHandler != nil {
			admin.POST("/delete-zone", cfg.AdminHandler.DeleteZone)
			admin.POST("/provision-user", cfg.AdminHandler.ProvisionUser)
		}
	}

	return r
}
