package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/http/response"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type MemberHandler struct {
	memberService services.MemberService
}

func NewMemberHandler(memberService services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

func (mh *MemberHandler) List(c *gin.Context) {
	if cellParam := c.Query("cell_id"); cellParam != "" {
		cellID, err := uuid.Parse(cellParam)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_cell_id", err)
			return
		}
		members, err := mh.memberService.ListByCell(c.Request.Context(), cellID)
		if err != nil {
			response.RespondError(c, http.StatusInternalServerError, "member_list_failed", err)
			return
		}
		response.RespondOK(c, members)
		return
	}
	members, err := mh.memberService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "member_list_failed", err)
		return
	}
	response.RespondOK(c, members)
}

func (mh *MemberHandler) Create(c *gin.Context) {
	var req struct {
		CellID    uuid.UUID `json:"cell_id"`
		FirstName string    `json:"first_name"`
		LastName  string    `json:"last_name"`
		Phone     string    `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	member, err := mh.memberService.Create(c.Request.Context(), req.CellID, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "member_create_failed", err)
		return
	}
	response.RespondOK(c, member)
}

func (mh *MemberHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Phone     *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	member, err := mh.memberService.Update(c.Request.Context(), id, req.FirstName, req.LastName, req.Phone)
	if err != nil {
		respondServiceError(c, "member_update_failed", err)
		return
	}
	response.RespondOK(c, member)
}

func (mh *MemberHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := mh.memberService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "member_delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
