package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/http/response"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type CellHandler struct {
	cellService services.CellService
}

func NewCellHandler(cellService services.CellService) *CellHandler {
	return &CellHandler{cellService: cellService}
}

func (ch *CellHandler) List(c *gin.Context) {
	if areaParam := c.Query("area_id"); areaParam != "" {
		areaID, err := uuid.Parse(areaParam)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_area_id", err)
			return
		}
		cells, err := ch.cellService.ListByArea(c.Request.Context(), areaID)
		if err != nil {
			response.RespondError(c, http.StatusInternalServerError, "cell_list_failed", err)
			return
		}
		response.RespondOK(c, cells)
		return
	}
	cells, err := ch.cellService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "cell_list_failed", err)
		return
	}
	response.RespondOK(c, cells)
}

func (ch *CellHandler) Create(c *gin.Context) {
	var req struct {
		AreaID   uuid.UUID  `json:"area_id"`
		Name     string     `json:"name"`
		LeaderID *uuid.UUID `json:"leader_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	cell, err := ch.cellService.Create(c.Request.Context(), req.AreaID, req.Name, req.LeaderID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "cell_create_failed", err)
		return
	}
	response.RespondOK(c, cell)
}

func (ch *CellHandler) Update(c *gin.Context) {
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
	cell, err := ch.cellService.Update(c.Request.Context(), id, req.Name, req.LeaderID)
	if err != nil {
		respondServiceError(c, "cell_update_failed", err)
		return
	}
	response.RespondOK(c, cell)
}

func (ch *CellHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ch.cellService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "cell_delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
