package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionToken struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID    uuid.UUID `gorm:"type:uuid;not null;index;column:profile_id" json:"profile_id"`
	AccessToken  string    `gorm:"not null;column:access_token" json:"-"`
	RefreshToken string    `gorm:"not null;index;column:refresh_token" json:"-"`
	ExpiresAt    time.Time `gorm:"not null;column:expires_at" json:"expires_at"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (SessionToken) TableName() string {
	return "session_token"
}
