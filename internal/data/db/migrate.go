package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/gracefieldhq/celldesk-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity + auth
		// =========================
		&domain.Identity{},
		&domain.Profile{},
		&domain.SessionToken{},

		// =========================
		// Hierarchy
		// =========================
		&domain.Zone{},
		&domain.Area{},
		&domain.Cell{},
		&domain.Member{},

		// =========================
		// Activity
		// =========================
		&domain.Meeting{},
		&domain.Alert{},
	)
}

func EnsureIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_identity_email ON identity(email);`).Error; err != nil {
		return fmt.Errorf("create idx_identity_email: %w", err)
	}
	// Fast scoped-profile lookups during cascade deletes.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_profile_zone_id ON profile(zone_id);`).Error; err != nil {
		return fmt.Errorf("create idx_profile_zone_id: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_profile_area_id ON profile(area_id);`).Error; err != nil {
		return fmt.Errorf("create idx_profile_area_id: %w", err)
	}
	// Meeting reporting range scans.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_meeting_cell_date ON meeting(cell_id, date);`).Error; err != nil {
		return fmt.Errorf("create idx_meeting_cell_date: %w", err)
	}
	return nil
}
