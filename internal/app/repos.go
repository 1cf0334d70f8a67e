package app

import (
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type Repos struct {
	Identity     repos.IdentityRepo
	Profile      repos.ProfileRepo
	SessionToken repos.SessionTokenRepo
	Zone         repos.ZoneRepo
	Area         repos.AreaRepo
	Cell         repos.CellRepo
	Member       repos.MemberRepo
	Meeting      repos.MeetingRepo
	Alert        repos.AlertRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Identity:     repos.NewIdentityRepo(db, log),
		Profile:      repos.NewProfileRepo(db, log),
		SessionToken: repos.NewSessionTokenRepo(db, log),
		Zone:         repos.NewZoneRepo(db, log),
		Area:         repos.NewAreaRepo(db, log),
		Cell:         repos.NewCellRepo(db, log),
		Member:       repos.NewMemberRepo(db, log),
		Meeting:      repos.NewMeetingRepo(db, log),
		Alert:        repos.NewAlertRepo(db, log),
	}
}
