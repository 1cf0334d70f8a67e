package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gracefieldhq/celldesk-backend/internal/data/repos"
	"github.com/gracefieldhq/celldesk-backend/internal/domain"
)

func TestProvisionLeaderCreatesIdentityAndProfile(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewProvisionService(db, log, repos.NewIdentityRepo(db, log), repos.NewProfileRepo(db, log))

	zoneID := uuid.New()
	res, err := svc.ProvisionLeader(context.Background(), ProvisionInput{
		Email:    "leader@example.org",
		Password: "chosen-password",
		Name:     "Zone Leader",
		Role:     domain.RoleZoneLeader,
		ZoneID:   &zoneID,
	})
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if res.Updated {
		t.Fatalf("fresh provision reported updated")
	}
	if res.Password != "chosen-password" {
		t.Fatalf("fresh provision rewrote the password: got=%q", res.Password)
	}

	var identity domain.Identity
	if err := db.First(&identity, "email = ?", "leader@example.org").Error; err != nil {
		t.Fatalf("identity not created: %v", err)
	}
	var profile domain.Profile
	if err := db.First(&profile, "id = ?", identity.ID).Error; err != nil {
		t.Fatalf("profile not created: %v", err)
	}
	if profile.ID != res.UserID {
		t.Fatalf("profile id mismatch: got=%s want=%s", profile.ID, res.UserID)
	}
	if profile.Role != domain.RoleZoneLeader || profile.ZoneID == nil || *profile.ZoneID != zoneID {
		t.Fatalf("profile scope mismatch: %+v", profile)
	}
}

func TestProvisionLeaderRepairsExistingIdentity(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewProvisionService(db, log, repos.NewIdentityRepo(db, log), repos.NewProfileRepo(db, log))

	input := ProvisionInput{
		Email:    "repair@example.org",
		Password: "first-password",
		Name:     "Area Leader",
		Role:     domain.RoleAreaLeader,
		AreaID:   ptr(uuid.New()),
	}
	first, err := svc.ProvisionLeader(context.Background(), input)
	if err != nil {
		t.Fatalf("first provision: %v", err)
	}

	input.Password = "second-password"
	input.Name = "Area Leader Renamed"
	second, err := svc.ProvisionLeader(context.Background(), input)
	if err != nil {
		t.Fatalf("repair provision: %v", err)
	}
	if !second.Updated {
		t.Fatalf("repair did not report updated")
	}
	if second.UserID != first.UserID {
		t.Fatalf("repair minted a new user id: got=%s want=%s", second.UserID, first.UserID)
	}

	if n := countRows(t, db, &domain.Identity{}); n != 1 {
		t.Fatalf("identity rows: got=%d want=1", n)
	}
	if n := countRows(t, db, &domain.Profile{}); n != 1 {
		t.Fatalf("profile rows: got=%d want=1", n)
	}

	var identity domain.Identity
	if err := db.First(&identity, "email = ?", "repair@example.org").Error; err != nil {
		t.Fatalf("load identity: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte("second-password")); err != nil {
		t.Fatalf("password not rotated on repair: %v", err)
	}

	var profile domain.Profile
	if err := db.First(&profile, "id = ?", first.UserID).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.Name != "Area Leader Renamed" {
		t.Fatalf("profile not upserted: name=%q", profile.Name)
	}
}

func TestProvisionLeaderGeneratesPasswordOnShortRepair(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewProvisionService(db, log, repos.NewIdentityRepo(db, log), repos.NewProfileRepo(db, log))

	input := ProvisionInput{
		Email:    "shortpw@example.org",
		Password: "long-enough-password",
		Name:     "Cell Leader",
		Role:     domain.RoleCellLeader,
		CellID:   ptr(uuid.New()),
	}
	if _, err := svc.ProvisionLeader(context.Background(), input); err != nil {
		t.Fatalf("first provision: %v", err)
	}

	input.Password = "tiny"
	res, err := svc.ProvisionLeader(context.Background(), input)
	if err != nil {
		t.Fatalf("repair provision: %v", err)
	}
	if res.Password == "tiny" {
		t.Fatalf("short password was kept on repair")
	}
	if len(res.Password) < 10 {
		t.Fatalf("generated password too short: %d", len(res.Password))
	}

	var identity domain.Identity
	if err := db.First(&identity, "email = ?", "shortpw@example.org").Error; err != nil {
		t.Fatalf("load identity: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(res.Password)); err != nil {
		t.Fatalf("stored hash does not match returned password: %v", err)
	}
}

func TestProvisionLeaderScopeValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	log := newTestLogger(t)
	svc := NewProvisionService(db, log, repos.NewIdentityRepo(db, log), repos.NewProfileRepo(db, log))

	cases := []struct {
		name  string
		input ProvisionInput
	}{
		{
			name: "two scope refs",
			input: ProvisionInput{
				Email: "a@example.org", Password: "long-enough-pw", Name: "A",
				Role: domain.RoleZoneLeader, ZoneID: ptr(uuid.New()), AreaID: ptr(uuid.New()),
			},
		},
		{
			name: "super-admin with scope",
			input: ProvisionInput{
				Email: "b@example.org", Password: "long-enough-pw", Name: "B",
				Role: domain.RoleSuperAdmin, ZoneID: ptr(uuid.New()),
			},
		},
		{
			name: "cell leader with zone scope",
			input: ProvisionInput{
				Email: "c@example.org", Password: "long-enough-pw", Name: "C",
				Role: domain.RoleCellLeader, ZoneID: ptr(uuid.New()),
			},
		},
		{
			name: "missing email",
			input: ProvisionInput{
				Password: "long-enough-pw", Name: "D", Role: domain.RoleZoneLeader,
			},
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.ProvisionLeader(context.Background(), tc.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
