package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/http/response"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type AreaHandler struct {
	areaService services.AreaService
}

func NewAreaHandler(areaService services.AreaService) *AreaHandler {
	return &AreaHandler{areaService: areaService}
}

func (ah *AreaHandler) List(c *gin.Context) {
	if zoneParam := c.Query("zone_id"); zoneParam != "" {
		zoneID, err := uuid.Parse(zoneParam)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_zone_id", err)
			return
		}
		areas, err := ah.areaService.ListByZone(c.Request.Context(), zoneID)
		if err != nil {
			response.RespondError(c, http.StatusInternalServerError, "area_list_failed", err)
			return
		}
		response.RespondOK(c, areas)
		return
	}
	areas, err := ah.areaService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "area_list_failed", err)
		return
	}
	response.RespondOK(c, areas)
}

func (ah *AreaHandler) Create(c *gin.Context) {
	var req struct {
		ZoneID   uuid.UUID  `json:"zone_id"`
		Name     string     `json:"name"`
		LeaderID *uuid.UUID `json:"leader_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	area, err := ah.areaService.Create(c.Request.Context(), req.ZoneID, req.Name, req.LeaderID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "area_create_failed", err)
		return
	}
	response.RespondOK(c, area)
}

func (ah *AreaHandler) Update(c *gin.Context) {
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
	area, err := ah.areaService.Update(c.Request.Context(), id, req.Name, req.LeaderID)
	if err != nil {
		respondServiceError(c, "area_update_failed", err)
		return
	}
	response.RespondOK(c, area)
}

func (ah *AreaHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ah.areaService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "area_delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
