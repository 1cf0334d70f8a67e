package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gracefieldhq/celldesk-backend/internal/http/response"
	"github.com/gracefieldhq/celldesk-backend/internal/services"
)

type MeetingHandler struct {
	meetingService services.MeetingService
	profileService services.ProfileService
}

func NewMeetingHandler(meetingService services.MeetingService, profileService services.ProfileService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService, profileService: profileService}
}

func (mh *MeetingHandler) List(c *gin.Context) {
	if cellParam := c.Query("cell_id"); cellParam != "" {
		cellID, err := uuid.Parse(cellParam)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_cell_id", err)
			return
		}
		meetings, err := mh.meetingService.ListByCell(c.Request.Context(), cellID)
		if err != nil {
			response.RespondError(c, http.StatusInternalServerError, "meeting_list_failed", err)
			return
		}
		response.RespondOK(c, meetings)
		return
	}
	meetings, err := mh.meetingService.List(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "meeting_list_failed", err)
		return
	}
	response.RespondOK(c, meetings)
}

func (mh *MeetingHandler) Record(c *gin.Context) {
	var req struct {
		CellID     uuid.UUID `json:"cell_id"`
		Date       string    `json:"date"`
		Attendance int       `json:"attendance"`
		Offering   int64     `json:"offering"`
		Notes      string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	date, err := parseMeetingDate(req.Date)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}
	caller, err := mh.profileService.GetMe(c.Request.Context())
	if err != nil {
		respondServiceError(c, "meeting_record_failed", err)
		return
	}
	meeting, err := mh.meetingService.Record(c.Request.Context(), caller, services.RecordMeetingInput{
		CellID:     req.CellID,
		Date:       date,
		Attendance: req.Attendance,
		Offering:   req.Offering,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(c, "meeting_record_failed", err)
		return
	}
	response.RespondOK(c, meeting)
}

func (mh *MeetingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Attendance *int    `json:"attendance"`
		Offering   *int64  `json:"offering"`
		Notes      *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	caller, err := mh.profileService.GetMe(c.Request.Context())
	if err != nil {
		respondServiceError(c, "meeting_update_failed", err)
		return
	}
	meeting, err := mh.meetingService.Update(c.Request.Context(), caller, id, req.Attendance, req.Offering, req.Notes)
	if err != nil {
		respondServiceError(c, "meeting_update_failed", err)
		return
	}
	response.RespondOK(c, meeting)
}

func (mh *MeetingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := mh.meetingService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, "meeting_delete_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// parseMeetingDate accepts RFC3339 timestamps and plain dates.
func parseMeetingDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
