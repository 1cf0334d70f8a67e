package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type CellRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cells []*domain.Cell) ([]*domain.Cell, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Cell, error)
	ListByAreaIDs(ctx context.Context, tx *gorm.DB, areaIDs []uuid.UUID) ([]*domain.Cell, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Cell, error)
	Update(ctx context.Context, tx *gorm.DB, cell *domain.Cell) (*domain.Cell, error)
	NullLeaderByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type cellRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCellRepo(db *gorm.DB, baseLog *logger.Logger) CellRepo {
	return &cellRepo{db: db, log: baseLog.With("repo", "CellRepo")}
}

func (cr *cellRepo) Create(ctx context.Context, tx *gorm.DB, cells []*domain.Cell) ([]*domain.Cell, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(cells) == 0 {
		return []*domain.Cell{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&cells).Error; err != nil {
		return nil, err
	}
	return cells, nil
}

func (cr *cellRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Cell, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*domain.Cell
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *cellRepo) ListByAreaIDs(ctx context.Context, tx *gorm.DB, areaIDs []uuid.UUID) ([]*domain.Cell, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*domain.Cell
	if len(areaIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("area_id IN ?", areaIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *cellRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Cell, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*domain.Cell
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *cellRepo) Update(ctx context.Context, tx *gorm.DB, cell *domain.Cell) (*domain.Cell, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Save(cell).Error; err != nil {
		return nil, err
	}
	return cell, nil
}

func (cr *cellRepo) NullLeaderByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&domain.Cell{}).
		Where("id IN ?", ids).
		Update("leader_id", nil).Error
}

func (cr *cellRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Cell{}).Error
}
