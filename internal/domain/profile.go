package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the leader/admin record shown to the application. Its ID is
// the same uuid as the backing Identity. At most one of ZoneID/AreaID/
// CellID is set, matching the role.
type Profile struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string     `gorm:"not null;index;column:email" json:"email"`
	Name      string     `gorm:"not null;column:name" json:"name"`
	Phone     string     `gorm:"column:phone" json:"phone"`
	Role      Role       `gorm:"not null;column:role" json:"role"`
	ZoneID    *uuid.UUID `gorm:"type:uuid;index;column:zone_id" json:"zone_id"`
	AreaID    *uuid.UUID `gorm:"type:uuid;index;column:area_id" json:"area_id"`
	CellID    *uuid.UUID `gorm:"type:uuid;index;column:cell_id" json:"cell_id"`
	Active    bool       `gorm:"not null;default:true;column:active" json:"active"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profile"
}

// ScopeRef returns the single scope id set on the profile, if any.
func (p *Profile) ScopeRef() *uuid.UUID {
	switch {
	case p.ZoneID != nil:
		return p.ZoneID
	case p.AreaID != nil:
		return p.AreaID
	case p.CellID != nil:
		return p.CellID
	}
	return nil
}
