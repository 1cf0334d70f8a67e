package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type AlertRepo interface {
	Create(ctx context.Context, tx *gorm.DB, alerts []*domain.Alert) ([]*domain.Alert, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Alert, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Alert, error)
	Update(ctx context.Context, tx *gorm.DB, alert *domain.Alert) (*domain.Alert, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	DeleteByZoneIDs(ctx context.Context, tx *gorm.DB, zoneIDs []uuid.UUID) error
}

type alertRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAlertRepo(db *gorm.DB, baseLog *logger.Logger) AlertRepo {
	return &alertRepo{db: db, log: baseLog.With("repo", "AlertRepo")}
}

func (ar *alertRepo) Create(ctx context.Context, tx *gorm.DB, alerts []*domain.Alert) ([]*domain.Alert, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(alerts) == 0 {
		return []*domain.Alert{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (ar *alertRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Alert, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*domain.Alert
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

func (ar *alertRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Alert, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*domain.Alert
	if err := transaction.WithContext(ctx).
		Order("created_at desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *alertRepo) Update(ctx context.Context, tx *gorm.DB, alert *domain.Alert) (*domain.Alert, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if err := transaction.WithContext(ctx).Save(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

func (ar *alertRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Alert{}).Error
}

func (ar *alertRepo) DeleteByZoneIDs(ctx context.Context, tx *gorm.DB, zoneIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(zoneIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("zone_id IN ?", zoneIDs).
		Delete(&domain.Alert{}).Error
}
