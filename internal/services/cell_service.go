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

type CellService interface {
	List(ctx context.Context) ([]*domain.Cell, error)
	ListByArea(ctx context.Context, areaID uuid.UUID) ([]*domain.Cell, error)
	Create(ctx context.Context, areaID uuid.UUID, name string, leaderID *uuid.UUID) (*domain.Cell, error)
	Update(ctx context.Context, id uuid.UUID, name *string, leaderID *uuid.UUID) (*domain.Cell, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type cellService struct {
	db        *gorm.DB
	log       *logger.Logger
	areaRepo  repos.AreaRepo
	cellRepo  repos.CellRepo
	directory DirectoryService
}

func NewCellService(db *gorm.DB, log *logger.Logger, areaRepo repos.AreaRepo, cellRepo repos.CellRepo, directory DirectoryService) CellService {
	return &cellService{
		db:        db,
		log:       log.With("service", "CellService"),
		areaRepo:  areaRepo,
		cellRepo:  cellRepo,
		directory: directory,
	}
}

func (cs *cellService) List(ctx context.Context) ([]*domain.Cell, error) {
	return cs.cellRepo.List(ctx, nil)
}

func (cs *cellService) ListByArea(ctx context.Context, areaID uuid.UUID) ([]*domain.Cell, error) {
	return cs.cellRepo.ListByAreaIDs(ctx, nil, []uuid.UUID{areaID})
}

func (cs *cellService) Create(ctx context.Context, areaID uuid.UUID, name string, leaderID *uuid.UUID) (*domain.Cell, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	areas, err := cs.areaRepo.GetByIDs(ctx, nil, []uuid.UUID{areaID})
	if err != nil {
		return nil, fmt.Errorf("look up area: %w", err)
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("area %s: %w", areaID, ErrNotFound)
	}
	cell := &domain.Cell{ID: uuid.New(), AreaID: areaID, Name: name, LeaderID: leaderID}
	created, err := cs.cellRepo.Create(ctx, nil, []*domain.Cell{cell})
	if err != nil {
		return nil, fmt.Errorf("create cell: %w", err)
	}
	if cs.directory != nil {
		cs.directory.MergeCell(created[0])
	}
	return created[0], nil
}

func (cs *cellService) Update(ctx context.Context, id uuid.UUID, name *string, leaderID *uuid.UUID) (*domain.Cell, error) {
	cells, err := cs.cellRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("look up cell: %w", err)
	}
	if len(cells) == 0 {
		return nil, ErrNotFound
	}
	cell := cells[0]
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		cell.Name = trimmed
	}
	if leaderID != nil {
		cell.LeaderID = leaderID
	}
	updated, err := cs.cellRepo.Update(ctx, nil, cell)
	if err != nil {
		return nil, fmt.Errorf("update cell: %w", err)
	}
	if cs.directory != nil {
		cs.directory.MergeCell(updated)
	}
	return updated, nil
}

func (cs *cellService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := cs.cellRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("delete cell: %w", err)
	}
	if cs.directory != nil {
		cs.directory.RemoveCell(id)
	}
	return nil
}
