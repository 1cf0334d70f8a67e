package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/http/response"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type AlertHandler struct {
	alertService   services.AlertService
	profileService services.ProfileService
}

func NewAlertHandler(alertService services.AlertService, profileService services.ProfileService) *AlertHandler {
	return &AlertHandler{alertService: alertService, profileService: profileService}
}

func (ah *AlertHandler) List(c *gin.Context) {
	caller, err := ah.profileService.GetMe(c.Request.Context())
	if err != nil {
		respondServiceError(c, "alert_list_failed", err)
		return
	}
	alerts, err := ah.alertService.ListVisibleTo(c.Request.Context(), caller)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "alert_list_failed", err)
		return
	}
	response.RespondOK(c, alerts)
}

func (ah *AlertHandler) Create(c *gin.Context) {
	var req struct {
		Title    string     `json:"title"`
		Body     string     `json:"body"`
		Audience string     `json:"audience"`
		ZoneID   *uuid.UUID `json:"zone_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	audience, err := domain.ParseAudience(req.Audience)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_audience", err)
		return
	}
	caller, err := ah.profileService.GetMe(c.Request.Context())
	if err != nil {
		respondServiceError(c, "alert_create_failed", err)
		return
	}
	alert, err := ah.alertService.Create(c.Request.Context(), caller, req.Title, req.Body, audience, req.ZoneID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "alert_create_failed", err)
		return
	}
	response.RespondOK(c, alert)
}

func (ah *AlertHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ah.alertService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "alert_delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
