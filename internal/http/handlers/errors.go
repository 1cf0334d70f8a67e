package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gracefieldhq/celldesk-backend/internal/http/response"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

// respondServiceError maps the service error sentinels onto the HTTP
// taxonomy; anything unclassified is surfaced as a 500 with the message
// passed through verbatim.
func respondServiceError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, services.ErrForbidden):
		response.RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, services.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrDuplicateIdentity):
		response.RespondError(c, http.StatusConflict, "duplicate_identity", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, code, err)
	}
}
