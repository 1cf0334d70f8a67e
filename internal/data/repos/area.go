package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type AreaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, areas []*domain.Area) ([]*domain.Area, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Area, error)
	ListByZoneIDs(ctx context.Context, tx *gorm.DB, zoneIDs []uuid.UUID) ([]*domain.Area, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Area, error)
	Update(ctx context.Context, tx *gorm.DB, area *domain.Area) (*domain.Area, error)
	NullLeaderByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type areaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAreaRepo(db *gorm.DB, baseLog *logger.Logger) AreaRepo {
	return &areaRepo{db: db, log: baseLog.With("repo", "AreaRepo")}
}

func (ar *areaRepo) Create(ctx context.Context, tx *gorm.DB, areas []*domain.Area) ([]*domain.Area, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(areas) == 0 {
		return []*domain.Area{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

func (ar *areaRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Area, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*domain.Area
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

func (ar *areaRepo) ListByZoneIDs(ctx context.Context, tx *gorm.DB, zoneIDs []uuid.UUID) ([]*domain.Area, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*domain.Area
	if len(zoneIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("zone_id IN ?", zoneIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *areaRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Area, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*domain.Area
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *areaRepo) Update(ctx context.Context, tx *gorm.DB, area *domain.Area) (*domain.Area, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Save(area).Error; err != nil {
		return nil, err
	}
	return area, nil
}

func (ar *areaRepo) NullLeaderByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&domain.Area{}).
		Where("id IN ?", ids).
		Update("leader_id", nil).Error
}

func (ar *areaRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Area{}).Error
}
