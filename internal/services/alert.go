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
	"github.com/gracefieldhq/celldesk-backend/internal/realtime"
)

type AlertService interface {
	Create(ctx context.Context, creator *domain.Profile, title, body string, audience domain.Audience, zoneID *uuid.UUID) (*domain.Alert, error)
	ListVisibleTo(ctx context.Context, profile *domain.Profile) ([]*domain.Alert, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type alertService struct {
	db        *gorm.DB
	log       *logger.Logger
	alertRepo repos.AlertRepo
	emitter   SSEEmitter
	directory DirectoryService
}

func NewAlertService(
	db *gorm.DB,
	log *logger.Logger,
	alertRepo repos.AlertRepo,
	emitter SSEEmitter,
	directory DirectoryService,
) AlertService {
	return &alertService{
		db:        db,
		log:       log.With("service", "AlertService"),
		alertRepo: alertRepo,
		emitter:   emitter,
		directory: directory,
	}
}

func (as *alertService) Create(ctx context.Context, creator *domain.Profile, title, body string, audience domain.Audience, zoneID *uuid.UUID) (*domain.Alert, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if _, err := domain.ParseAudience(string(audience)); err != nil {
		return nil, err
	}
	if audience == domain.AudienceZone && zoneID == nil {
		return nil, fmt.Errorf("zone audience requires zone_id")
	}
	if audience != domain.AudienceZone {
		zoneID = nil
	}

	alert := &domain.Alert{
		ID:        uuid.New(),
		Title:     title,
		Body:      body,
		Audience:  audience,
		ZoneID:    zoneID,
		CreatedBy: creator.ID,
	}
	created, err := as.alertRepo.Create(ctx, nil, []*domain.Alert{alert})
	if err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}
	row := created[0]
	if as.directory != nil {
		as.directory.MergeAlert(row)
	}
	if as.emitter != nil {
		// Zone-scoped alerts go to that zone's channel only; the generic
		// zone-audience channel carries them too but is subscribed by
		// super-admins alone.
		channel := realtime.AlertChannel(string(audience))
		if audience == domain.AudienceZone {
			as.emitter.Emit(ctx, realtime.SSEMessage{
				Channel: realtime.ZoneAlertChannel(row.ZoneID.String()),
				Event:   realtime.SSEEventAlertCreated,
				Data:    row,
			})
		}
		as.emitter.Emit(ctx, realtime.SSEMessage{
			Channel: channel,
			Event:   realtime.SSEEventAlertCreated,
			Data:    row,
		})
	}
	return row, nil
}

func (as *alertService) ListVisibleTo(ctx context.Context, profile *domain.Profile) ([]*domain.Alert, error) {
	all, err := as.alertRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	visible := make([]*domain.Alert, 0, len(all))
	for _, alert := range all {
		if AlertMatchesProfile(alert, profile) {
			visible = append(visible, alert)
		}
	}
	return visible, nil
}

func (as *alertService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := as.alertRepo.DeleteByIDs(ctx, nil, []uuid.UUID{id}); err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	if as.directory != nil {
		as.directory.RemoveAlert(id)
	}
	return nil
}

// AlertMatchesProfile decides audience membership over the closed audience
// and role sets. Super-admins see everything.
func AlertMatchesProfile(alert *domain.Alert, profile *domain.Profile) bool {
	if alert == nil || profile == nil {
		return false
	}
	if profile.Role == domain.RoleSuperAdmin {
		return true
	}
	switch alert.Audience {
	case domain.AudienceEveryone:
		return true
	case domain.AudienceZoneLeaders:
		return profile.Role == domain.RoleZoneLeader
	case domain.AudienceAreaLeaders:
		return profile.Role == domain.RoleAreaLeader
	case domain.AudienceCellLeaders:
		return profile.Role == domain.RoleCellLeader
	case domain.AudienceZone:
		return alert.ZoneID != nil && profile.ZoneID != nil && *alert.ZoneID == *profile.ZoneID
	}
	return false
}
