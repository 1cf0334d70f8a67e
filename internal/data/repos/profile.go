package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profiles []*domain.Profile) ([]*domain.Profile, error)
	Upsert(ctx context.Context, tx *gorm.DB, profile *domain.Profile) (*domain.Profile, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Profile, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Profile, error)
	ListByZoneIDs(ctx context.Context, tx *gorm.DB, zoneIDs []uuid.UUID) ([]*domain.Profile, error)
	ListByAreaIDs(ctx context.Context, tx *gorm.DB, areaIDs []uuid.UUID) ([]*domain.Profile, error)
	Update(ctx context.Context, tx *gorm.DB, profile *domain.Profile) (*domain.Profile, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	DeleteByZoneIDs(ctx context.Context, tx *gorm.DB, zoneIDs []uuid.UUID) error
	DeleteByAreaIDs(ctx context.Context, tx *gorm.DB, areaIDs []uuid.UUID) error
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (pr *profileRepo) Create(ctx context.Context, tx *gorm.DB, profiles []*domain.Profile) ([]*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(profiles) == 0 {
		return []*domain.Profile{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Upsert inserts the profile or replaces the existing row with the same id.
func (pr *profileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *domain.Profile) (*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (pr *profileRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*domain.Profile
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

func (pr *profileRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*domain.Profile
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *profileRepo) ListByZoneIDs(ctx context.Context, tx *gorm.DB, zoneIDs []uuid.UUID) ([]*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*domain.Profile
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

func (pr *profileRepo) ListByAreaIDs(ctx context.Context, tx *gorm.DB, areaIDs []uuid.UUID) ([]*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*domain.Profile
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

func (pr *profileRepo) Update(ctx context.Context, tx *gorm.DB, profile *domain.Profile) (*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (pr *profileRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Profile{}).Error
}

func (pr *profileRepo) DeleteByZoneIDs(ctx context.Context, tx *gorm.DB, zoneIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(zoneIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("zone_id IN ?", zoneIDs).
		Delete(&domain.Profile{}).Error
}

func (pr *profileRepo) DeleteByAreaIDs(ctx context.Context, tx *gorm.DB, areaIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if len(areaIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("area_id IN ?", areaIDs).
		Delete(&domain.Profile{}).Error
}
