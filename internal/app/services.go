package app

import (
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Profile   services.ProfileService
	Zone      services.ZoneService
	Area      services.AreaService
	Cell      services.CellService
	Member    services.MemberService
	Meeting   services.MeetingService
	Alert     services.AlertService
	Report    services.ReportService
	Directory services.DirectoryService
	Cascade   services.CascadeService
	Provision services.ProvisionService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, emitter services.SSEEmitter) Services {
	log.Info("Wiring services...")

	directory := services.NewDirectoryService(log, r.Zone, r.Area, r.Cell, r.Member, r.Meeting, r.Alert, r.Profile)

	auth := services.NewAuthService(db, log, r.Identity, r.Profile, r.SessionToken,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	// Session changes trigger a background directory reload.
	auth.SetSessionNotifier(directory)

	return Services{
		Auth:      auth,
		Profile:   services.NewProfileService(db, log, r.Profile),
		Zone:      services.NewZoneService(db, log, r.Zone, directory),
		Area:      services.NewAreaService(db, log, r.Zone, r.Area, directory),
		Cell:      services.NewCellService(db, log, r.Area, r.Cell, directory),
		Member:    services.NewMemberService(db, log, r.Cell, r.Member, directory),
		Meeting:   services.NewMeetingService(db, log, r.Cell, r.Meeting, directory),
		Alert:     services.NewAlertService(db, log, r.Alert, emitter, directory),
		Report:    services.NewReportService(db, log, r.Area, r.Cell, r.Meeting),
		Directory: directory,
		Cascade: services.NewCascadeService(db, log, r.Zone, r.Area, r.Cell, r.Member,
			r.Meeting, r.Alert, r.Profile, r.Identity, r.SessionToken, emitter, directory),
		Provision: services.NewProvisionService(db, log, r.Identity, r.Profile),
	}
}
