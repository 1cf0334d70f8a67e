package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/http/response"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (ph *ProfileHandler) GetMe(c *gin.Context) {
	profile, err := ph.profileService.GetMe(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "profile_failed", err)
		return
	}
	response.RespondOK(c, profile)
}

func (ph *ProfileHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	profile, err := ph.profileService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "profile_failed", err)
		return
	}
	response.RespondOK(c, profile)
}

func (ph *ProfileHandler) List(c *gin.Context) {
	profiles, err := ph.profileService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "profile_list_failed", err)
		return
	}
	response.RespondOK(c, profiles)
}
