package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type SessionTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tokens []*domain.SessionToken) ([]*domain.SessionToken, error)
	GetByProfileIDs(ctx context.Context, tx *gorm.DB, profileIDs []uuid.UUID) ([]*domain.SessionToken, error)
	GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*domain.SessionToken, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	DeleteByProfileIDs(ctx context.Context, tx *gorm.DB, profileIDs []uuid.UUID) error
}

type sessionTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionTokenRepo(db *gorm.DB, baseLog *logger.Logger) SessionTokenRepo {
	return &sessionTokenRepo{db: db, log: baseLog.With("repo", "SessionTokenRepo")}
}

func (sr *sessionTokenRepo) Create(ctx context.Context, tx *gorm.DB, tokens []*domain.SessionToken) ([]*domain.SessionToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(tokens) == 0 {
		return []*domain.SessionToken{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (sr *sessionTokenRepo) GetByProfileIDs(ctx context.Context, tx *gorm.DB, profileIDs []uuid.UUID) ([]*domain.SessionToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*domain.SessionToken
	if len(profileIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("profile_id IN ?", profileIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sessionTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*domain.SessionToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result domain.SessionToken
	err := transaction.WithContext(ctx).
		Where("refresh_token = ?", refreshToken).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *sessionTokenRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.SessionToken{}).Error
}

func (sr *sessionTokenRepo) DeleteByProfileIDs(ctx context.Context, tx *gorm.DB, profileIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(profileIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("profile_id IN ?", profileIDs).
		Delete(&domain.SessionToken{}).Error
}
