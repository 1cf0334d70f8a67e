package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
)

func newMeetingService(t *testing.T, db *gorm.DB) MeetingService {
	t.Helper()
	log := newTestLogger(t)
	return NewMeetingService(db, log,
		repos.NewCellRepo(db, log),
		repos.NewMeetingRepo(db, log),
		nil)
}

func TestRecordMeetingByOwnCellLeader(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newMeetingService(t, db)

	zone := seedZone(t, db, "Zone A")
	area := seedArea(t, db, zone.ID, "Area A")
	cell := seedCell(t, db, area.ID, "Cell A")
	leader := seedProfile(t, db, domain.RoleCellLeader, nil, nil, &cell.ID)

	meeting, err := svc.Record(context.Background(), leader, RecordMeetingInput{
		CellID:     cell.ID,
		Date:       time.Now(),
		Attendance: 9,
		Offering:   2500,
		Notes:      "good turnout",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if meeting.ID == uuid.Nil || meeting.CellID != cell.ID {
		t.Fatalf("meeting not persisted properly: %+v", meeting)
	}
}

func TestRecordMeetingForeignCellForbidden(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newMeetingService(t, db)

	zone := seedZone(t, db, "Zone A")
	area := seedArea(t, db, zone.ID, "Area A")
	ownCell := seedCell(t, db, area.ID, "Own Cell")
	otherCell := seedCell(t, db, area.ID, "Other Cell")
	leader := seedProfile(t, db, domain.RoleCellLeader, nil, nil, &ownCell.ID)

	_, err := svc.Record(context.Background(), leader, RecordMeetingInput{
		CellID:     otherCell.ID,
		Date:       time.Now(),
		Attendance: 5,
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if n := countRows(t, db, &domain.Meeting{}); n != 0 {
		t.Fatalf("meeting recorded despite forbidden caller")
	}
}

func TestRecordMeetingValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newMeetingService(t, db)

	zone := seedZone(t, db, "Zone A")
	area := seedArea(t, db, zone.ID, "Area A")
	cell := seedCell(t, db, area.ID, "Cell A")
	admin := seedProfile(t, db, domain.RoleSuperAdmin, nil, nil, nil)

	if _, err := svc.Record(context.Background(), admin, RecordMeetingInput{
		CellID: cell.ID, Date: time.Now(), Attendance: -1,
	}); err == nil {
		t.Fatalf("negative attendance accepted")
	}
	if _, err := svc.Record(context.Background(), admin, RecordMeetingInput{
		CellID: cell.ID, Date: time.Now(), Offering: -5,
	}); err == nil {
		t.Fatalf("negative offering accepted")
	}
	_, err := svc.Record(context.Background(), admin, RecordMeetingInput{
		CellID: uuid.New(), Date: time.Now(),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown cell: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMeetingPartialFields(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newMeetingService(t, db)

	zone := seedZone(t, db, "Zone A")
	area := seedArea(t, db, zone.ID, "Area A")
	cell := seedCell(t, db, area.ID, "Cell A")
	admin := seedProfile(t, db, domain.RoleSuperAdmin, nil, nil, nil)
	seeded := seedMeeting(t, db, cell.ID, time.Now(), 10, 1000)

	updated, err := svc.Update(context.Background(), admin, seeded.ID, ptr(15), nil, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Attendance != 15 {
		t.Fatalf("attendance not updated: got=%d", updated.Attendance)
	}
	if updated.Offering != 1000 {
		t.Fatalf("offering changed unexpectedly: got=%d", updated.Offering)
	}
}
