package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

// ReportFilter narrows a summary to one subtree. At most one of the scope
// ids should be set; none means the whole church.
type ReportFilter struct {
	ZoneID *uuid.UUID
	AreaID *uuid.UUID
	CellID *uuid.UUID
	From   time.Time
	To     time.Time
}

type CellReport struct {
	CellID        uuid.UUID `json:"cell_id"`
	CellName      string    `json:"cell_name"`
	MeetingCount  int       `json:"meeting_count"`
	Attendance    int       `json:"attendance"`
	AvgAttendance float64   `json:"avg_attendance"`
	Offering      int64     `json:"offering"`
}

type SummaryReport struct {
	From          time.Time    `json:"from"`
	To            time.Time    `json:"to"`
	MeetingCount  int          `json:"meeting_count"`
	Attendance    int          `json:"attendance"`
	AvgAttendance float64      `json:"avg_attendance"`
	Offering      int64        `json:"offering"`
	Cells         []CellReport `json:"cells"`
}

type ReportService interface {
	Summary(ctx context.Context, filter ReportFilter) (*SummaryReport, error)
}

type reportService struct {
	db          *gorm.DB
	log         *logger.Logger
	areaRepo    repos.AreaRepo
	cellRepo    repos.CellRepo
	meetingRepo repos.MeetingRepo
}

func NewReportService(
	db *gorm.DB,
	log *logger.Logger,
	areaRepo repos.AreaRepo,
	cellRepo repos.CellRepo,
	meetingRepo repos.MeetingRepo,
) ReportService {
	return &reportService{
		db:          db,
		log:         log.With("service", "ReportService"),
		areaRepo:    areaRepo,
		cellRepo:    cellRepo,
		meetingRepo: meetingRepo,
	}
}

func (rs *reportService) Summary(ctx context.Context, filter ReportFilter) (*SummaryReport, error) {
	if filter.To.IsZero() {
		filter.To = time.Now()
	}
	if filter.From.After(filter.To) {
		return nil, fmt.Errorf("from must be before to")
	}

	cells, err := rs.resolveCells(ctx, filter)
	if err != nil {
		return nil, err
	}
	cellIDs := make([]uuid.UUID, 0, len(cells))
	cellNames := make(map[uuid.UUID]string, len(cells))
	for _, c := range cells {
		cellIDs = append(cellIDs, c.ID)
		cellNames[c.ID] = c.Name
	}

	meetings, err := rs.meetingRepo.ListInRange(ctx, nil, cellIDs, filter.From, filter.To)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}

	perCell := make(map[uuid.UUID]*CellReport, len(cellIDs))
	for _, id := range cellIDs {
		perCell[id] = &CellReport{CellID: id, CellName: cellNames[id]}
	}
	summary := &SummaryReport{From: filter.From, To: filter.To}
	for _, m := range meetings {
		cr := perCell[m.CellID]
		if cr == nil {
			continue
		}
		cr.MeetingCount++
		cr.Attendance += m.Attendance
		cr.Offering += m.Offering
		summary.MeetingCount++
		summary.Attendance += m.Attendance
		summary.Offering += m.Offering
	}
	for _, id := range cellIDs {
		cr := perCell[id]
		if cr.MeetingCount > 0 {
			cr.AvgAttendance = float64(cr.Attendance) / float64(cr.MeetingCount)
		}
		summary.Cells = append(summary.Cells, *cr)
	}
	if summary.MeetingCount > 0 {
		summary.AvgAttendance = float64(summary.Attendance) / float64(summary.MeetingCount)
	}
	return summary, nil
}

// resolveCells walks the hierarchy down to the set of cells the filter
// covers.
func (rs *reportService) resolveCells(ctx context.Context, filter ReportFilter) ([]*domain.Cell, error) {
	switch {
	case filter.CellID != nil:
		return rs.cellRepo.GetByIDs(ctx, nil, []uuid.UUID{*filter.CellID})
	case filter.AreaID != nil:
		return rs.cellRepo.ListByAreaIDs(ctx, nil, []uuid.UUID{*filter.AreaID})
	case filter.ZoneID != nil:
		areas, err := rs.areaRepo.ListByZoneIDs(ctx, nil, []uuid.UUID{*filter.ZoneID})
		if err != nil {
			return nil, fmt.Errorf("list areas: %w", err)
		}
		areaIDs := make([]uuid.UUID, 0, len(areas))
		for _, a := range areas {
			areaIDs = append(areaIDs, a.ID)
		}
		return rs.cellRepo.ListByAreaIDs(ctx, nil, areaIDs)
	}
	return rs.cellRepo.List(ctx, nil)
}
