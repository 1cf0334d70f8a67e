package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type RecordMeetingInput struct {
	CellID     uuid.UUID
	Date       time.Time
	Attendance int
	Offering   int64
	Notes      string
}

type MeetingService interface {
	List(ctx context.Context) ([]*domain.Meeting, error)
	ListByCell(ctx context.Context, cellID uuid.UUID) ([]*domain.Meeting, error)
	Record(ctx context.Context, caller *domain.Profile, input RecordMeetingInput) (*domain.Meeting, error)
	Update(ctx context.Context, caller *domain.Profile, id uuid.UUID, attendance *int, offering *int64, notes *string) (*domain.Meeting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type meetingService struct {
	db          *gorm.DB
	log         *logger.Logger
	cellRepo    repos.CellRepo
	meetingRepo repos.MeetingRepo
	directory   DirectoryService
}

func NewMeetingService(db *gorm.DB, log *logger.Logger, cellRepo repos.CellRepo, meetingRepo repos.MeetingRepo, directory DirectoryService) MeetingService {
	return &meetingService{
		db:          db,
		log:         log.With("service", "MeetingService"),
		cellRepo:    cellRepo,
		meetingRepo: meetingRepo,
		directory:   directory,
	}
}

func (ms *meetingService) List(ctx context.Context) ([]*domain.Meeting, error) {
	return ms.meetingRepo.List(ctx, nil)
}

func (ms *meetingService) ListByCell(ctx context.Context, cellID uuid.UUID) ([]*domain.Meeting, error) {
	return ms.meetingRepo.ListByCellIDs(ctx, nil, []uuid.UUID{cellID})
}

func (ms *meetingService) Record(ctx context.Context, caller *domain.Profile, input RecordMeetingInput) (*domain.Meeting, error) {
	if input.CellID == uuid.Nil {
		return nil, fmt.Errorf("cell_id is required")
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}
	if input.Attendance < 0 {
		return nil, fmt.Errorf("attendance cannot be negative")
	}
	if input.Offering < 0 {
		return nil, fmt.Errorf("offering cannot be negative")
	}
	if err := ms.authorizeCell(caller, input.CellID); err != nil {
		return nil, err
	}
	cells, err := ms.cellRepo.GetByIDs(ctx, nil, []uuid.UUID{input.CellID})
	if err != nil {
		return nil, fmt.Errorf("look up cell: %w", err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("cell %s: %w", input.CellID, ErrNotFound)
	}
	meeting := &domain.Meeting{
		ID:         uuid.New(),
		CellID:     input.CellID,
		Date:       input.Date,
		Attendance: input.Attendance,
		Offering:   input.Offering,
		Notes:      input.Notes,
	}
	created, err := ms.meetingRepo.Create(ctx, nil, []*domain.Meeting{meeting})
	if err != nil {
		return nil, fmt.Errorf("record meeting: %w", err)
	}
	if ms.directory != nil {
		ms.directory.MergeMeeting(created[0])
	}
	return created[0], nil
}

func (ms *meetingService) Update(ctx context.Context, caller *domain.Profile, id uuid.UUID, attendance *int, offering *int64, notes *string) (*domain.Meeting, error) {
	meetings, err := ms.meetingRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("look up meeting: %w", err)
	}
	if len(meetings) == 0 {
		return nil, ErrNotFound
	}
	meeting := meetings[0]
	if err := ms.authorizeCell(caller, meeting.CellID); err != nil {
		return nil, err
	}
	if attendance != nil {
		if *attendance < 0 {
			return nil, fmt.Errorf("attendance cannot be negative")
		}
		meeting.Attendance = *attendance
	}
	if offering != nil {
		if *offering < 0 {
			return nil, fmt.Errorf("offering cannot be negative")
		}
		meeting.Offering = *offering
	}
	if notes != nil {
		meeting.Notes = *notes
	}
	updated, err := ms.meetingRepo.Update(ctx, nil, meeting)
	if err != nil {
		return nil, fmt.Errorf("update meeting: %w", err)
	}
	if ms.directory != nil {
		ms.directory.MergeMeeting(updated)
	}
	return updated, nil
}

func (ms *meetingService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ms.meetingRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if ms.directory != nil {
		ms.directory.RemoveMeeting(id)
	}
	return nil
}

// authorizeCell limits meeting writes to the caller's own cell unless the
// caller is a super-admin.
func (ms *meetingService) authorizeCell(caller *domain.Profile, cellID uuid.UUID) error {
	if caller == nil {
		return ErrForbidden
	}
	switch caller.Role {
	case domain.RoleSuperAdmin, domain.RoleZoneLeader, domain.RoleAreaLeader:
		return nil
	case domain.RoleCellLeader:
		if caller.CellID != nil && *caller.CellID == cellID {
			return nil
		}
	}
	return ErrForbidden
}
