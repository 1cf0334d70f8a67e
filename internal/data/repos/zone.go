package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type ZoneRepo interface {
	Create(ctx context.Context, tx *gorm.DB, zones []*domain.Zone) ([]*domain.Zone, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Zone, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Zone, error)
	Update(ctx context.Context, tx *gorm.DB, zone *domain.Zone) (*domain.Zone, error)
	NullLeaderByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type zoneRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewZoneRepo(db *gorm.DB, baseLog *logger.Logger) ZoneRepo {
	return &zoneRepo{db: db, log: baseLog.With("repo", "ZoneRepo")}
}

func (zr *zoneRepo) Create(ctx context.Context, tx *gorm.DB, zones []*domain.Zone) ([]*domain.Zone, error) {
	transaction := tx
	if transaction == nil {
		transaction = zr.db
	}
	if len(zones) == 0 {
		return []*domain.Zone{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

func (zr *zoneRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Zone, error) {
	transaction := tx
	if transaction == nil {
		transaction = zr.db
	}
	var results []*domain.Zone
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

func (zr *zoneRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Zone, error) {
	transaction := tx
	if transaction == nil {
		transaction = zr.db
	}
	var results []*domain.Zone
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (zr *zoneRepo) Update(ctx context.Context, tx *gorm.DB, zone *domain.Zone) (*domain.Zone, error) {
	transaction := tx
	if transaction == nil {
		transaction = zr.db
	}
	if err := transaction.WithContext(ctx).Save(zone).Error; err != nil {
		return nil, err
	}
	return zone, nil
}

func (zr *zoneRepo) NullLeaderByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = zr.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&domain.Zone{}).
		Where("id IN ?", ids).
		Update("leader_id", nil).Error
}

func (zr *zoneRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = zr.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Zone{}).Error
}
