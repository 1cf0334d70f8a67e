package app

import (
	httpH "github.com/gracefieldhq/celldesk-backend/internal/http/handlers"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
	"github.com/gracefieldhq/celldesk-backend/internal/realtime"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Profile   *httpH.ProfileHandler
	Zone      *httpH.ZoneHandler
	Area      *httpH.AreaHandler
	Cell      *httpH.CellHandler
	Member    *httpH.MemberHandler
	Meeting   *httpH.MeetingHandler
	Alert     *httpH.AlertHandler
	Report    *httpH.ReportHandler
	Directory *httpH.DirectoryHandler
	Admin     *httpH.AdminHandler
	Realtime  *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, s Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(),
		Auth:      httpH.NewAuthHandler(s.Auth),
		Profile:   httpH.NewProfileHandler(s.Profile),
		Zone:      httpH.NewZoneHandler(s.Zone),
		Area:      httpH.NewAreaHandler(s.Area),
		Cell:      httpH.NewCellHandler(s.Cell),
		Member:    httpH.NewMemberHandler(s.Member),
		Meeting:   httpH.NewMeetingHandler(s.Meeting, s.Profile),
		Alert:     httpH.NewAlertHandler(s.Alert, s.Profile),
		Report:    httpH.NewReportHandler(s.Report),
		Directory: httpH.NewDirectoryHandler(s.Directory),
		Admin:     httpH.NewAdminHandler(s.Cascade, s.Provision),
		Realtime:  httpH.NewRealtimeHandler(log, hub, s.Profile, s.Directory),
	}
}
