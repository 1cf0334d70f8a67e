package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/http/response"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/ctxutil"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

// AdminHandler owns the two orchestrations that are super-admin only: the
// zone cascade delete and leader account provisioning.
type AdminHandler struct {
	cascadeService   services.CascadeService
	provisionService services.ProvisionService
}

func NewAdminHandler(cascadeService services.CascadeService, provisionService services.ProvisionService) *AdminHandler {
	return &AdminHandler{
		cascadeService:   cascadeService,
		provisionService: provisionService,
	}
}

func (ah *AdminHandler) DeleteZone(c *gin.Context) {
	var req struct {
		ZoneID      string `json:"zoneId"`
		ZoneIDSnake string `json:"zone_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.ZoneID == "" {
		req.ZoneID = req.ZoneIDSnake
	}
	zoneID, err := uuid.Parse(req.ZoneID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_zone_id", fmt.Errorf("invalid zoneId: %w", err))
		return
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.ProfileID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("no session in context"))
		return
	}
	if err := ah.cascadeService.DeleteZone(c.Request.Context(), rd.ProfileID, zoneID); err != nil {
		respondServiceError(c, "delete_zone_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"success": true})
}

func (ah *AdminHandler) ProvisionUser(c *gin.Context) {
	var req struct {
		Email    string  `json:"email"`
		Password string  `json:"password"`
		Name     string  `json:"name"`
		Phone    string  `json:"phone"`
		Role     string  `json:"role"`
		ZoneID   *string `json:"zoneId"`
		AreaID   *string `json:"areaId"`
		CellID   *string `json:"cellId"`

		// snake_case spellings of the scope fields are accepted too.
		ZoneIDSnake *string `json:"zone_id"`
		AreaIDSnake *string `json:"area_id"`
		CellIDSnake *string `json:"cell_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.ZoneID == nil {
		req.ZoneID = req.ZoneIDSnake
	}
	if req.AreaID == nil {
		req.AreaID = req.AreaIDSnake
	}
	if req.CellID == nil {
		req.CellID = req.CellIDSnake
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_role", err)
		return
	}
	input := services.ProvisionInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     role,
	}
	for param, pair := range map[string]struct {
		raw *string
		dst **uuid.UUID
	}{
		"zoneId": {req.ZoneID, &input.ZoneID},
		"areaId": {req.AreaID, &input.AreaID},
		"cellId": {req.CellID, &input.CellID},
	} {
		if pair.raw == nil || *pair.raw == "" {
			continue
		}
		id, err := uuid.Parse(*pair.raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_scope", fmt.Errorf("invalid %s: %w", param, err))
			return
		}
		*pair.dst = &id
	}

	result, err := ah.provisionService.ProvisionLeader(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, "provision_failed", err)
		return
	}
	payload := gin.H{
		"userId":   result.UserID.String(),
		"password": result.Password,
	}
	if result.Updated {
		payload["updated"] = true
	}
	response.RespondOK(c, payload)
}
