package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type MemberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, members []*domain.Member) ([]*domain.Member, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Member, error)
	ListByCellIDs(ctx context.Context, tx *gorm.DB, cellIDs []uuid.UUID) ([]*domain.Member, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Member, error)
	Update(ctx context.Context, tx *gorm.DB, member *domain.Member) (*domain.Member, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	DeleteByCellIDs(ctx context.Context, tx *gorm.DB, cellIDs []uuid.UUID) error
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return &memberRepo{db: db, log: baseLog.With("repo", "MemberRepo")}
}

func (mr *memberRepo) Create(ctx context.Context, tx *gorm.DB, members []*domain.Member) ([]*domain.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(members) == 0 {
		return []*domain.Member{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (mr *memberRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*domain.Member
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

func (mr *memberRepo) ListByCellIDs(ctx context.Context, tx *gorm.DB, cellIDs []uuid.UUID) ([]*domain.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*domain.Member
	if len(cellIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("cell_id IN ?", cellIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*domain.Member
	if err := transaction.WithContext(ctx).
		Order("last_name asc, first_name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *memberRepo) Update(ctx context.Context, tx *gorm.DB, member *domain.Member) (*domain.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if err := transaction.WithContext(ctx).Save(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (mr *memberRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Member{}).Error
}

func (mr *memberRepo) DeleteByCellIDs(ctx context.Context, tx *gorm.DB, cellIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(cellIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("cell_id IN ?", cellIDs).
		Delete(&domain.Member{}).Error
}
