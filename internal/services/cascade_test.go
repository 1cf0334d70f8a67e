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

func newCascadeService(t *testing.T, db *gorm.DB) CascadeService {
	t.Helper()
	log := newTestLogger(t)
	return NewCascadeService(db, log,
		repos.NewZoneRepo(db, log),
		repos.NewAreaRepo(db, log),
		repos.NewCellRepo(db, log),
		repos.NewMemberRepo(db, log),
		repos.NewMeetingRepo(db, log),
		repos.NewAlertRepo(db, log),
		repos.NewProfileRepo(db, log),
		repos.NewIdentityRepo(db, log),
		repos.NewSessionTokenRepo(db, log),
		nil, nil)
}

type cascadeFixture struct {
	admin      *domain.Profile
	zone       *domain.Zone
	zoneLeader *domain.Profile
	areaLeader *domain.Profile
	otherZone  *domain.Zone
	otherCell  *domain.Cell
}

// seedCascadeTree builds one full zone (area, cell, members, meeting, alert,
// scoped leader profiles with sessions) and a second zone that must survive.
func seedCascadeTree(t *testing.T, db *gorm.DB) cascadeFixture {
	t.Helper()

	admin := seedProfile(t, db, domain.RoleSuperAdmin, nil, nil, nil)

	zone := seedZone(t, db, "North Zone")
	area := seedArea(t, db, zone.ID, "North Area")
	cell := seedCell(t, db, area.ID, "North Cell")
	seedMember(t, db, cell.ID, "Ama")
	seedMember(t, db, cell.ID, "Kofi")
	seedMeeting(t, db, cell.ID, time.Now().AddDate(0, 0, -7), 12, 4500)

	zoneLeader := seedProfile(t, db, domain.RoleZoneLeader, &zone.ID, nil, nil)
	areaLeader := seedProfile(t, db, domain.RoleAreaLeader, nil, &area.ID, nil)
	if err := db.Model(&domain.Zone{}).Where("id = ?", zone.ID).Update("leader_id", zoneLeader.ID).Error; err != nil {
		t.Fatalf("attach zone leader: %v", err)
	}
	if err := db.Model(&domain.Area{}).Where("id = ?", area.ID).Update("leader_id", areaLeader.ID).Error; err != nil {
		t.Fatalf("attach area leader: %v", err)
	}
	session := &domain.SessionToken{
		ID:           uuid.New(),
		ProfileID:    zoneLeader.ID,
		AccessToken:  "access",
		RefreshToken: uuid.NewString(),
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	alert := &domain.Alert{
		ID:        uuid.New(),
		Title:     "Zone announcement",
		Audience:  domain.AudienceZone,
		ZoneID:    &zone.ID,
		CreatedBy: admin.ID,
	}
	if err := db.Create(alert).Error; err != nil {
		t.Fatalf("seed alert: %v", err)
	}

	otherZone := seedZone(t, db, "South Zone")
	otherArea := seedArea(t, db, otherZone.ID, "South Area")
	otherCell := seedCell(t, db, otherArea.ID, "South Cell")
	seedMember(t, db, otherCell.ID, "Esi")

	return cascadeFixture{
		admin:      admin,
		zone:       zone,
		zoneLeader: zoneLeader,
		areaLeader: areaLeader,
		otherZone:  otherZone,
		otherCell:  otherCell,
	}
}

func TestDeleteZoneRemovesEntireSubtree(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newCascadeService(t, db)
	f := seedCascadeTree(t, db)

	if err := svc.DeleteZone(context.Background(), f.admin.ID, f.zone.ID); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}

	var zone domain.Zone
	if err := db.First(&zone, "id = ?", f.zone.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("zone still present: err=%v", err)
	}
	for model, want := range map[string]struct {
		count any
		n     int64
	}{
		"areas":    {&domain.Area{}, 1},
		"cells":    {&domain.Cell{}, 1},
		"members":  {&domain.Member{}, 1},
		"meetings": {&domain.Meeting{}, 0},
		"alerts":   {&domain.Alert{}, 0},
		"sessions": {&domain.SessionToken{}, 0},
	} {
		if got := countRows(t, db, want.count); got != want.n {
			t.Fatalf("%s rows after cascade: got=%d want=%d", model, got, want.n)
		}
	}

	// Leader profiles and their identities are removed; the admin survives.
	for _, id := range []uuid.UUID{f.zoneLeader.ID, f.areaLeader.ID} {
		var p domain.Profile
		if err := db.First(&p, "id = ?", id).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("leader profile %s still present: err=%v", id, err)
		}
		var ident domain.Identity
		if err := db.First(&ident, "id = ?", id).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
			t.Fatalf("leader identity %s still present: err=%v", id, err)
		}
	}
	var admin domain.Profile
	if err := db.First(&admin, "id = ?", f.admin.ID).Error; err != nil {
		t.Fatalf("admin profile removed: %v", err)
	}

	// The sibling zone's subtree is untouched.
	var survivor domain.Cell
	if err := db.First(&survivor, "id = ?", f.otherCell.ID).Error; err != nil {
		t.Fatalf("sibling cell removed: %v", err)
	}
}

func TestDeleteZoneRejectsNonSuperAdmin(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newCascadeService(t, db)
	f := seedCascadeTree(t, db)

	before := countRows(t, db, &domain.Profile{})

	err := svc.DeleteZone(context.Background(), f.zoneLeader.ID, f.zone.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Nothing may be mutated on a refused call.
	if got := countRows(t, db, &domain.Profile{}); got != before {
		t.Fatalf("profiles mutated on forbidden call: got=%d want=%d", got, before)
	}
	var zone domain.Zone
	if err := db.First(&zone, "id = ?", f.zone.ID).Error; err != nil {
		t.Fatalf("zone mutated on forbidden call: %v", err)
	}
}

func TestDeleteZoneUnknownZone(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newCascadeService(t, db)
	admin := seedProfile(t, db, domain.RoleSuperAdmin, nil, nil, nil)

	err := svc.DeleteZone(context.Background(), admin.ID, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
