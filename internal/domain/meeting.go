package domain

import (
	"time"

	"github.com/google/uuid"
)

// Meeting records one gathering of a cell: how many showed up and what was
// collected. Offering is stored in the smallest currency unit.
type Meeting struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CellID     uuid.UUID `gorm:"type:uuid;not null;index;column:cell_id" json:"cell_id"`
	Date       time.Time `gorm:"not null;index;column:date" json:"date"`
	Attendance int       `gorm:"not null;default:0;column:attendance" json:"attendance"`
	Offering   int64     `gorm:"not null;default:0;column:offering" json:"offering"`
	Notes      string    `gorm:"column:notes" json:"notes"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Meeting) TableName() string {
	return "meeting"
}
