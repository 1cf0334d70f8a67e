package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/ctxutil"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
	"github.com/gracefieldhq/celldesk-backend/internal/realtime"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type RealtimeHandler struct {
	log            *logger.Logger
	hub            *realtime.SSEHub
	profileService services.ProfileService

	mu      sync.RWMutex
	clients map[uuid.UUID]*realtime.SSEClient // key: ProfileID
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub, profileService services.ProfileService, directory services.DirectoryService) *RealtimeHandler {
	h := &RealtimeHandler{
		log:            log,
		hub:            hub,
		profileService: profileService,
		clients:        make(map[uuid.UUID]*realtime.SSEClient),
	}
	if directory != nil {
		go h.watchSessions(directory.SubscribeSessionChanges())
	}
	return h
}

// watchSessions closes a profile's stream when its session changes: the
// token that authorized the stream is no longer the live session, so the
// client must reconnect with a fresh one.
func (h *RealtimeHandler) watchSessions(sub *services.Subscription) {
	for profileID := range sub.C {
		h.mu.Lock()
		client, ok := h.clients[profileID]
		if ok {
			delete(h.clients, profileID)
		}
		h.mu.Unlock()
		if ok {
			h.log.Info("Closing SSE stream after session change", "profile_id", profileID.String())
			h.hub.CloseClient(client)
		}
	}
}

// SSEStream opens the event stream and subscribes the caller to the
// directory channel plus the alert channels the caller's role can see.
// One stream per profile; a reconnect replaces the previous client.
func (h *RealtimeHandler) SSEStream(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.ProfileID == uuid.Nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "not authenticated"}})
		return
	}
	profile, err := h.profileService.GetMe(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "no profile for session"}})
		return
	}
	h.log.Info("SSEStream open", "profile_id", profile.ID.String(), "role", string(profile.Role))

	h.mu.Lock()
	if existing, ok := h.clients[profile.ID]; ok {
		h.hub.CloseClient(existing)
		delete(h.clients, profile.ID)
	}
	client := h.hub.NewSSEClient(profile.ID)
	h.clients[profile.ID] = client
	h.mu.Unlock()

	for _, ch := range channelsForProfile(profile) {
		h.hub.AddChannel(client, ch)
	}

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.mu.Lock()
	if h.clients[profile.ID] == client {
		delete(h.clients, profile.ID)
	}
	h.mu.Unlock()
	h.hub.CloseClient(client)
}

func channelsForProfile(profile *domain.Profile) []string {
	channels := []string{
		realtime.ChannelDirectory,
		realtime.AlertChannel(string(domain.AudienceEveryone)),
	}
	switch profile.Role {
	case domain.RoleSuperAdmin:
		channels = append(channels,
			realtime.AlertChannel(string(domain.AudienceZoneLeaders)),
			realtime.AlertChannel(string(domain.AudienceAreaLeaders)),
			realtime.AlertChannel(string(domain.AudienceCellLeaders)),
			realtime.AlertChannel(string(domain.AudienceZone)),
		)
	case domain.RoleZoneLeader:
		channels = append(channels, realtime.AlertChannel(string(domain.AudienceZoneLeaders)))
	case domain.RoleAreaLeader:
		channels = append(channels, realtime.AlertChannel(string(domain.AudienceAreaLeaders)))
	case domain.RoleCellLeader:
		channels = append(channels, realtime.AlertChannel(string(domain.AudienceCellLeaders)))
	}
	// Only the caller's own zone channel; the generic zone-audience channel
	// above is reserved for super-admins.
	if profile.Role != domain.RoleSuperAdmin && profile.ZoneID != nil {
		channels = append(channels, realtime.ZoneAlertChannel(profile.ZoneID.String()))
	}
	return channels
}
