package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type MeetingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, meetings []*domain.Meeting) ([]*domain.Meeting, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Meeting, error)
	ListByCellIDs(ctx context.Context, tx *gorm.DB, cellIDs []uuid.UUID) ([]*domain.Meeting, error)
	ListInRange(ctx context.Context, tx *gorm.DB, cellIDs []uuid.UUID, from, to time.Time) ([]*domain.Meeting, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Meeting, error)
	Update(ctx context.Context, tx *gorm.DB, meeting *domain.Meeting) (*domain.Meeting, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
	DeleteByCellIDs(ctx context.Context, tx *gorm.DB, cellIDs []uuid.UUID) error
}

type meetingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMeetingRepo(db *gorm.DB, baseLog *logger.Logger) MeetingRepo {
	return &meetingRepo{db: db, log: baseLog.With("repo", "MeetingRepo")}
}

func (mr *meetingRepo) Create(ctx context.Context, tx *gorm.DB, meetings []*domain.Meeting) ([]*domain.Meeting, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(meetings) == 0 {
		return []*domain.Meeting{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

func (mr *meetingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Meeting, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*domain.Meeting
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

func (mr *meetingRepo) ListByCellIDs(ctx context.Context, tx *gorm.DB, cellIDs []uuid.UUID) ([]*domain.Meeting, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*domain.Meeting
	if len(cellIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("cell_id IN ?", cellIDs).
		Order("date desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *meetingRepo) ListInRange(ctx context.Context, tx *gorm.DB, cellIDs []uuid.UUID, from, to time.Time) ([]*domain.Meeting, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*domain.Meeting
	if len(cellIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("cell_id IN ?", cellIDs).
		Where("date >= ? AND date <= ?", from, to).
		Order("date asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *meetingRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Meeting, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*domain.Meeting
	if err := transaction.WithContext(ctx).
		Order("date desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *meetingRepo) Update(ctx context.Context, tx *gorm.DB, meeting *domain.Meeting) (*domain.Meeting, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if err := transaction.WithContext(ctx).Save(meeting).Error; err != nil {
		return nil, err
	}
	return meeting, nil
}

func (mr *meetingRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&domain.Meeting{}).Error
}

func (mr *meetingRepo) DeleteByCellIDs(ctx context.Context, tx *gorm.DB, cellIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(cellIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("cell_id IN ?", cellIDs).
		Delete(&domain.Meeting{}).Error
}
