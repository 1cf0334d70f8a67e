package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
	"github.com/gracefieldhq/celldesk-backend/internal/platform/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Identity{},
		&domain.Profile{},
		&domain.SessionToken{},
		&domain.Zone{},
		&domain.Area{},
		&domain.Cell{},
		&domain.Member{},
		&domain.Meeting{},
		&domain.Alert{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, role domain.Role, zoneID, areaID, cellID *uuid.UUID) *domain.Profile {
	t.Helper()
	id := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	identity := &domain.Identity{
		ID:           id,
		Email:        fmt.Sprintf("%s@example.org", id),
		PasswordHash: string(hash),
	}
	if err := db.Create(identity).Error; err != nil {
		t.Fatalf("seed identity: %v", err)
	}
	profile := &domain.Profile{
		ID:     id,
		Email:  identity.Email,
		Name:   "Seeded " + string(role),
		Role:   role,
		ZoneID: zoneID,
		AreaID: areaID,
		CellID: cellID,
		Active: true,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func seedZone(t *testing.T, db *gorm.DB, name string) *domain.Zone {
	t.Helper()
	zone := &domain.Zone{ID: uuid.New(), Name: name}
	if err := db.Create(zone).Error; err != nil {
		t.Fatalf("seed zone: %v", err)
	}
	return zone
}

func seedArea(t *testing.T, db *gorm.DB, zoneID uuid.UUID, name string) *domain.Area {
	t.Helper()
	area := &domain.Area{ID: uuid.New(), ZoneID: zoneID, Name: name}
	if err := db.Create(area).Error; err != nil {
		t.Fatalf("seed area: %v", err)
	}
	return area
}

func seedCell(t *testing.T, db *gorm.DB, areaID uuid.UUID, name string) *domain.Cell {
	t.Helper()
	cell := &domain.Cell{ID: uuid.New(), AreaID: areaID, Name: name}
	if err := db.Create(cell).Error; err != nil {
		t.Fatalf("seed cell: %v", err)
	}
	return cell
}

func seedMember(t *testing.T, db *gorm.DB, cellID uuid.UUID, first string) *domain.Member {
	t.Helper()
	member := &domain.Member{ID: uuid.New(), CellID: cellID, FirstName: first}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return member
}

func seedMeeting(t *testing.T, db *gorm.DB, cellID uuid.UUID, date time.Time, attendance int, offering int64) *domain.Meeting {
	t.Helper()
	meeting := &domain.Meeting{
		ID:         uuid.New(),
		CellID:     cellID,
		Date:       date,
		Attendance: attendance,
		Offering:   offering,
	}
	if err := db.Create(meeting).Error; err != nil {
		t.Fatalf("seed meeting: %v", err)
	}
	return meeting
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func ptr[T any](v T) *T { return &v }
