package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

// ZoneService covers zone CRUD except deletion, which always goes through
// the cascade orchestrator.
type ZoneService interface {
	List(ctx context.Context) ([]*domain.Zone, error)
	Create(ctx context.Context, name string, leaderID *uuid.UUID) (*domain.Zone, error)
	Update(ctx context.Context, id uuid.UUID, name *string, leaderID *uuid.UUID) (*domain.Zone, error)
}

type zoneService struct {
	db        *gorm.DB
	log       *logger.Logger
	zoneRepo  repos.ZoneRepo
	directory DirectoryService
}

func NewZoneService(db *gorm.DB, log *logger.Logger, zoneRepo repos.ZoneRepo, directory DirectoryService) ZoneService {
	return &zoneService{
		db:        db,
		log:       log.With("service", "ZoneService"),
		zoneRepo:  zoneRepo,
		directory: directory,
	}
}

func (zs *zoneService) List(ctx context.Context) ([]*domain.Zone, error) {
	return zs.zoneRepo.List(ctx, nil)
}

func (zs *zoneService) Create(ctx context.Context, name string, leaderID *uuid.UUID) (*domain.Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	zone := &domain.Zone{ID: uuid.New(), Name: name, LeaderID: leaderID}
	created, err := zs.zoneRepo.Create(ctx, nil, []*domain.Zone{zone})
	if err != nil {
		return nil, fmt.Errorf("create zone: %w", err)
	}
	if zs.directory != nil {
		zs.directory.MergeZone(created[0])
	}
	return created[0], nil
}

func (zs *zoneService) Update(ctx context.Context, id uuid.UUID, name *string, leaderID *uuid.UUID) (*domain.Zone, error) {
	zones, err := zs.zoneRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("look up zone: %w", err)
	}
	if len(zones) == 0 {
		return nil, ErrNotFound
	}
	zone := zones[0]
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		zone.Name = trimmed
	}
	if leaderID != nil {
		zone.LeaderID = leaderID
	}
	updated, err := zs.zoneRepo.Update(ctx, nil, zone)
	if err != nil {
		return nil, fmt.Errorf("update zone: %w", err)
	}
	if zs.directory != nil {
		zs.directory.MergeZone(updated)
	}
	return updated, nil
}
