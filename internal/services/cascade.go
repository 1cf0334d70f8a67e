package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
	"github.com/gracefieldhq/celldesk-backend/internal/realtime"
)

// CascadeService deletes a zone and everything beneath it. The deletion
// plan is a topological walk over the four-level tree (zone → area → cell
// → member/meeting) with leader back-references nulled before the profiles
// they point at are removed. The whole plan runs in one transaction; the
// step order is still load-bearing because foreign keys are enforced at
// statement time.
type CascadeService interface {
	DeleteZone(ctx context.Context, callerProfileID, zoneID uuid.UUID) error
}

type cascadeService struct {
	db          *gorm.DB
	log         *logger.Logger
	zoneRepo    repos.ZoneRepo
	areaRepo    repos.AreaRepo
	cellRepo    repos.CellRepo
	memberRepo  repos.MemberRepo
	meetingRepo repos.MeetingRepo
	alertRepo   repos.AlertRepo
	profileRepo repos.ProfileRepo
	identRepo   repos.IdentityRepo
	tokenRepo   repos.SessionTokenRepo
	emitter     SSEEmitter
	directory   DirectoryService
}

func NewCascadeService(
	db *gorm.DB,
	log *logger.Logger,
	zoneRepo repos.ZoneRepo,
	areaRepo repos.AreaRepo,
	cellRepo repos.CellRepo,
	memberRepo repos.MemberRepo,
	meetingRepo repos.MeetingRepo,
	alertRepo repos.AlertRepo,
	profileRepo repos.ProfileRepo,
	identRepo repos.IdentityRepo,
	tokenRepo repos.SessionTokenRepo,
	emitter SSEEmitter,
	directory DirectoryService,
) CascadeService {
	return &cascadeService{
		db:          db,
		log:         log.With("service", "CascadeService"),
		zoneRepo:    zoneRepo,
		areaRepo:    areaRepo,
		cellRepo:    cellRepo,
		memberRepo:  memberRepo,
		meetingRepo: meetingRepo,
		alertRepo:   alertRepo,
		profileRepo: profileRepo,
		identRepo:   identRepo,
		tokenRepo:   tokenRepo,
		emitter:     emitter,
		directory:   directory,
	}
}

func (cs *cascadeService) DeleteZone(ctx context.Context, callerProfileID, zoneID uuid.UUID) error {
	if zoneID == uuid.Nil {
		return fmt.Errorf("zone_id is required")
	}

	// Authorization check runs before any mutating statement.
	callers, err := cs.profileRepo.GetByIDs(ctx, nil, []uuid.UUID{callerProfileID})
	if err != nil {
		return fmt.Errorf("look up caller profile: %w", err)
	}
	if len(callers) == 0 || !callers[0].Active || callers[0].Role != domain.RoleSuperAdmin {
		return ErrForbidden
	}

	zones, err := cs.zoneRepo.GetByIDs(ctx, nil, []uuid.UUID{zoneID})
	if err != nil {
		return fmt.Errorf("look up zone: %w", err)
	}
	if len(zones) == 0 {
		return ErrNotFound
	}

	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Step 1: collect the zone's areas.
		areas, err := cs.areaRepo.ListByZoneIDs(ctx, tx, []uuid.UUID{zoneID})
		if err != nil {
			return fmt.Errorf("list areas: %w", err)
		}
		areaIDs := make([]uuid.UUID, 0, len(areas))
		for _, a := range areas {
			areaIDs = append(areaIDs, a.ID)
		}

		// Step 2: collect the areas' cells.
		var cellIDs []uuid.UUID
		if len(areaIDs) > 0 {
			cells, err := cs.cellRepo.ListByAreaIDs(ctx, tx, areaIDs)
			if err != nil {
				return fmt.Errorf("list cells: %w", err)
			}
			for _, c := range cells {
				cellIDs = append(cellIDs, c.ID)
			}
		}

		// Step 3: meetings and members reference cells, so they go first.
		if len(cellIDs) > 0 {
			if err := cs.meetingRepo.DeleteByCellIDs(ctx, tx, cellIDs); err != nil {
				return fmt.Errorf("delete meetings: %w", err)
			}
			if err := cs.memberRepo.DeleteByCellIDs(ctx, tx, cellIDs); err != nil {
				return fmt.Errorf("delete members: %w", err)
			}
			if err := cs.cellRepo.DeleteByIDs(ctx, tx, cellIDs); err != nil {
				return fmt.Errorf("delete cells: %w", err)
			}
		}

		// Step 4: area-leader profiles, with their sessions and identities.
		areaProfiles, err := cs.profileRepo.ListByAreaIDs(ctx, tx, areaIDs)
		if err != nil {
			return fmt.Errorf("list area-leader profiles: %w", err)
		}
		if err := cs.deleteProfiles(ctx, tx, areaProfiles); err != nil {
			return err
		}

		// Step 5: null leader back-references on the areas before deleting
		// them, so statement-time FK checks never see a dangling leader_id.
		if err := cs.areaRepo.NullLeaderByIDs(ctx, tx, areaIDs); err != nil {
			return fmt.Errorf("null area leader references: %w", err)
		}

		// Step 6: the areas themselves.
		if err := cs.areaRepo.DeleteByIDs(ctx, tx, areaIDs); err != nil {
			return fmt.Errorf("delete areas: %w", err)
		}

		// Step 7: sever the zone's own leader reference.
		if err := cs.zoneRepo.NullLeaderByIDs(ctx, tx, []uuid.UUID{zoneID}); err != nil {
			return fmt.Errorf("null zone leader reference: %w", err)
		}

		// Step 8: zone-leader profiles.
		zoneProfiles, err := cs.profileRepo.ListByZoneIDs(ctx, tx, []uuid.UUID{zoneID})
		if err != nil {
			return fmt.Errorf("list zone-leader profiles: %w", err)
		}
		if err := cs.deleteProfiles(ctx, tx, zoneProfiles); err != nil {
			return err
		}

		// Zone-scoped alerts would otherwise orphan.
		if err := cs.alertRepo.DeleteByZoneIDs(ctx, tx, []uuid.UUID{zoneID}); err != nil {
			return fmt.Errorf("delete zone alerts: %w", err)
		}

		// Step 9: the zone row itself.
		if err := cs.zoneRepo.DeleteByIDs(ctx, tx, []uuid.UUID{zoneID}); err != nil {
			return fmt.Errorf("delete zone: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cs.log.Info("Zone cascade delete complete", "zone_id", zoneID)
	if cs.emitter != nil {
		cs.emitter.Emit(ctx, realtime.SSEMessage{
			Channel: realtime.ChannelDirectory,
			Event:   realtime.SSEEventZoneDeleted,
			Data:    map[string]any{"zone_id": zoneID.String()},
		})
	}
	// The caller cannot predict the removed set, so the snapshot is rebuilt
	// rather than patched.
	if cs.directory != nil {
		if err := cs.directory.Reload(ctx); err != nil && err != ErrReloadInFlight {
			cs.log.Warn("Directory reload after cascade failed", "error", err)
		} else if cs.emitter != nil {
			cs.emitter.Emit(ctx, realtime.SSEMessage{
				Channel: realtime.ChannelDirectory,
				Event:   realtime.SSEEventDirectoryReloaded,
			})
		}
	}
	return nil
}

func (cs *cascadeService) deleteProfiles(ctx context.Context, tx *gorm.DB, profiles []*domain.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	if err := cs.tokenRepo.DeleteByProfileIDs(ctx, tx, ids); err != nil {
		return fmt.Errorf("delete leader sessions: %w", err)
	}
	if err := cs.profileRepo.DeleteByIDs(ctx, tx, ids); err != nil {
		return fmt.Errorf("delete leader profiles: %w", err)
	}
	if err := cs.identRepo.DeleteByIDs(ctx, tx, ids); err != nil {
		return fmt.Errorf("delete leader identities: %w", err)
	}
	return nil
}
