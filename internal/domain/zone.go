package domain

import (
	"time"

	"github.com/google/uuid"
)

type Zone struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"not null;column:name" json:"name"`
	LeaderID  *uuid.UUID `gorm:"type:uuid;column:leader_id" json:"leader_id"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (Zone) TableName() string {
	return "zone"
}
