package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type MemberService interface {
	List(ctx context.Context) ([]*domain.Member, error)
	ListByCell(ctx context.Context, cellID uuid.UUID) ([]*domain.Member, error)
	Create(ctx context.Context, cellID uuid.UUID, firstName, lastName, phone string) (*domain.Member, error)
	Update(ctx context.Context, id uuid.UUID, firstName, lastName, phone *string) (*domain.Member, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type memberService struct {
	db         *gorm.DB
	log        *logger.Logger
	cellRepo   repos.CellRepo
	memberRepo repos.MemberRepo
	directory  DirectoryService
}

func NewMemberService(db *gorm.DB, log *logger.Logger, cellRepo repos.CellRepo, memberRepo repos.MemberRepo, directory DirectoryService) MemberService {
	return &memberService{
		db:         db,
		log:        log.With("service", "MemberService"),
		cellRepo:   cellRepo,
		memberRepo: memberRepo,
		directory:  directory,
	}
}

func (ms *memberService) List(ctx context.Context) ([]*domain.Member, error) {
	return ms.memberRepo.List(ctx, nil)
}

func (ms *memberService) ListByCell(ctx context.Context, cellID uuid.UUID) ([]*domain.Member, error) {
	return ms.memberRepo.ListByCellIDs(ctx, nil, []uuid.UUID{cellID})
}

func (ms *memberService) Create(ctx context.Context, cellID uuid.UUID, firstName, lastName, phone string) (*domain.Member, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, fmt.Errorf("first_name is required")
	}
	cells, err := ms.cellRepo.GetByIDs(ctx, nil, []uuid.UUID{cellID})
	if err != nil {
		return nil, fmt.Errorf("look up cell: %w", err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("cell %s: %w", cellID, ErrNotFound)
	}
	member := &domain.Member{
		ID:        uuid.New(),
		CellID:    cellID,
		FirstName: firstName,
		LastName:  strings.TrimSpace(lastName),
		Phone:     strings.TrimSpace(phone),
	}
	created, err := ms.memberRepo.Create(ctx, nil, []*domain.Member{member})
	if err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	if ms.directory != nil {
		ms.directory.MergeMember(created[0])
	}
	return created[0], nil
}

func (ms *memberService) Update(ctx context.Context, id uuid.UUID, firstName, lastName, phone *string) (*domain.Member, error) {
	members, err := ms.memberRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("look up member: %w", err)
	}
	if len(members) == 0 {
		return nil, ErrNotFound
	}
	member := members[0]
	if firstName != nil {
		trimmed := strings.TrimSpace(*firstName)
		if trimmed == "" {
			return nil, fmt.Errorf("first_name cannot be empty")
		}
		member.FirstName = trimmed
	}
	if lastName != nil {
		member.LastName = strings.TrimSpace(*lastName)
	}
	if phone != nil {
		member.Phone = strings.TrimSpace(*phone)
	}
	updated, err := ms.memberRepo.Update(ctx, nil, member)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	if ms.directory != nil {
		ms.directory.MergeMember(updated)
	}
	return updated, nil
}

func (ms *memberService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ms.memberRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if ms.directory != nil {
		ms.directory.RemoveMember(id)
	}
	return nil
}
