package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/http/response"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (rh *ReportHandler) Summary(c *gin.Context) {
	var filter services.ReportFilter

	for param, dst := range map[string]**uuid.UUID{
		"zone_id": &filter.ZoneID,
		"area_id": &filter.AreaID,
		"cell_id": &filter.CellID,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_filter", fmt.Errorf("invalid %s: %w", param, err))
			return
		}
		*dst = &id
	}

	from, err := parseReportBound(c.Query("from"), time.Time{})
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_from", err)
		return
	}
	to, err := parseReportBound(c.Query("to"), time.Now())
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_to", err)
		return
	}
	filter.From = from
	filter.To = to

	report, err := rh.reportService.Summary(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, "report_failed", err)
		return
	}
	response.RespondOK(c, report)
}

func parseReportBound(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
