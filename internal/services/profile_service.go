package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/ctxutil"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

type ProfileService interface {
	GetMe(ctx context.Context) (*domain.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.ProfileRepo
}

func NewProfileService(db *gorm.DB, log *logger.Logger, profileRepo repos.ProfileRepo) ProfileService {
	return &profileService{
		db:          db,
		log:         log.With("service", "ProfileService"),
		profileRepo: profileRepo,
	}
}

func (ps *profileService) GetMe(ctx context.Context) (*domain.Profile, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.ProfileID == uuid.Nil {
		return nil, fmt.Errorf("no session in context")
	}
	return ps.GetByID(ctx, rd.ProfileID)
}

func (ps *profileService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	profiles, err := ps.profileRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("look up profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, ErrNotFound
	}
	return profiles[0], nil
}

func (ps *profileService) List(ctx context.Context) ([]*domain.Profile, error) {
	return ps.profileRepo.List(ctx, nil)
}
