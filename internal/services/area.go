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

type AreaService interface {
	List(ctx context.Context) ([]*domain.Area, error)
	ListByZone(ctx context.Context, zoneID uuid.UUID) ([]*domain.Area, error)
	Create(ctx context.Context, zoneID uuid.UUID, name string, leaderID *uuid.UUID) (*domain.Area, error)
	Update(ctx context.Context, id uuid.UUID, name *string, leaderID *uuid.UUID) (*domain.Area, error)
	// Delete is the narrow non-cascading contract: the caller must already
	// have detached cells and profiles; a violated FK surfaces verbatim.
	Delete(ctx context.Context, id uuid.UUID) error
}

type areaService struct {
	db        *gorm.DB
	log       *logger.Logger
	zoneRepo  repos.ZoneRepo
	areaRepo  repos.AreaRepo
	directory DirectoryService
}

func NewAreaService(db *gorm.DB, log *logger.Logger, zoneRepo repos.ZoneRepo, areaRepo repos.AreaRepo, directory DirectoryService) AreaService {
	return &areaService{
		db:        db,
		log:       log.With("service", "AreaService"),
		zoneRepo:  zoneRepo,
		areaRepo:  areaRepo,
		directory: directory,
	}
}

func (as *areaService) List(ctx context.Context) ([]*domain.Area, error) {
	return as.areaRepo.List(ctx, nil)
}

func (as *areaService) ListByZone(ctx context.Context, zoneID uuid.UUID) ([]*domain.Area, error) {
	return as.areaRepo.ListByZoneIDs(ctx, nil, []uuid.UUID{zoneID})
}

func (as *areaService) Create(ctx context.Context, zoneID uuid.UUID, name string, leaderID *uuid.UUID) (*domain.Area, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	zones, err := as.zoneRepo.GetByIDs(ctx, nil, []uuid.UUID{zoneID})
	if err != nil {
		return nil, fmt.Errorf("look up zone: %w", err)
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("zone %s: %w", zoneID, ErrNotFound)
	}
	area := &domain.Area{ID: uuid.New(), ZoneID: zoneID, Name: name, LeaderID: leaderID}
	created, err := as.areaRepo.Create(ctx, nil, []*domain.Area{area})
	if err != nil {
		return nil, fmt.Errorf("create area: %w", err)
	}
	if as.directory != nil {
		as.directory.MergeArea(created[0])
	}
	return created[0], nil
}

func (as *areaService) Update(ctx context.Context, id uuid.UUID, name *string, leaderID *uuid.UUID) (*domain.Area, error) {
	areas, err := as.areaRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("look up area: %w", err)
	}
	if len(areas) == 0 {
		return nil, ErrNotFound
	}
	area := areas[0]
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		area.Name = trimmed
	}
	if leaderID != nil {
		area.LeaderID = leaderID
	}
	updated, err := as.areaRepo.Update(ctx, nil, area)
	if err != nil {
		return nil, fmt.Errorf("update area: %w", err)
	}
	if as.directory != nil {
		as.directory.MergeArea(updated)
	}
	return updated, nil
}

func (as *areaService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := as.areaRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("delete area: %w", err)
	}
	if as.directory != nil {
		as.directory.RemoveArea(id)
	}
	return nil
}
