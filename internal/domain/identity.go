package domain

import (
	"time"

	"gorm.io/datatypes"

	"github.com/google/uuid"
)

// Identity is the authentication record: credentials plus provider-style
// metadata. Application-facing fields live on Profile, which shares the
// same id.
type Identity struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	PasswordHash string         `gorm:"not null;column:password_hash" json:"-"`
	Metadata     datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (Identity) TableName() string {
	return "identity"
}
