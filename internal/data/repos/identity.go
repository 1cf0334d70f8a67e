package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type IdentityRepo interface {
	Create(ctx context.Context, tx *gorm.DB, identities []*domain.Identity) ([]*domain.Identity, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Identity, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*domain.Identity, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	UpdateCredentials(ctx context.Context, tx *gorm.DB, id uuid.UUID, passwordHash string, metadata datatypes.JSON) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type identityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdentityRepo(db *gorm.DB, baseLog *logger.Logger) IdentityRepo {
	return &identityRepo{db: db, log: baseLog.With("repo", "IdentityRepo")}
}

func (ir *identityRepo) Create(ctx context.Context, tx *gorm.DB, identities []*domain.Identity) ([]*domain.Identity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(identities) == 0 {
		return []*domain.Identity{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&identities).Error; err != nil {
		return nil, err
	}
	return identities, nil
}

func (ir *identityRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Identity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*domain.Identity
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

func (ir *identityRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*domain.Identity, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*domain.Identity
	if len(emails) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("email IN ?", emails).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *identityRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Identity{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ir *identityRepo) UpdateCredentials(ctx context.Context, tx *gorm.DB, id uuid.UUID, passwordHash string, metadata datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Identity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"metadata":      metadata,
		}).Error
}

func (ir *identityRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Identity{}).Error
}
