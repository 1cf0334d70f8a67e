package domain

import (
	"time"

	"github.com/google/uuid"
)

type Alert struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"not null;column:title" json:"title"`
	Body      string     `gorm:"column:body" json:"body"`
	Audience  Audience   `gorm:"not null;column:audience" json:"audience"`
	ZoneID    *uuid.UUID `gorm:"type:uuid;column:zone_id" json:"zone_id"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null;column:created_by" json:"created_by"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (Alert) TableName() string {
	return "alert"
}
