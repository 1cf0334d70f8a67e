package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/http/response"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type ZoneHandler struct {
	zoneService services.ZoneService
}

func NewZoneHandler(zoneService services.ZoneService) *ZoneHandler {
	return &ZoneHandler{zoneService: zoneService}
}

func (zh *ZoneHandler) List(c *gin.Context) {
	zones, err := zh.zoneService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "zone_list_failed", err)
		return
	}
	response.RespondOK(c, zones)
}

func (zh *ZoneHandler) Create(c *gin.Context) {
	var req struct {
		Name     string     `json:"name"`
		LeaderID *uuid.UUID `json:"leader_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	zone, err := zh.zoneService.Create(c.Request.Context(), req.Name, req.LeaderID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "zone_create_failed", err)
		return
	}
	response.RespondOK(c, zone)
}

func (zh *ZoneHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Name     *string    `json:"name"`
		LeaderID *uuid.UUID `json:"leader_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	zone, err := zh.zoneService.Update(c.Request.Context(), id, req.Name, req.LeaderID)
	if err != nil {
		respondServiceError(c, "zone_update_failed", err)
		return
	}
	response.RespondOK(c, zone)
}
