package domain

import (
	"time"

	"github.com/google/uuid"
)

type Area struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ZoneID    uuid.UUID  `gorm:"type:uuid;not null;index;column:zone_id" json:"zone_id"`
	Name      string     `gorm:"not null;column:name" json:"name"`
	LeaderID  *uuid.UUID `gorm:"type:uuid;column:leader_id" json:"leader_id"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (Area) TableName() string {
	return "area"
}
