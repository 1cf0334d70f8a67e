package domain

import "fmt"

// Role is the closed set of profile roles. Matching on a Role must be
// exhaustive; there are no free-form role strings anywhere in the system.
type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleZoneLeader Role = "zone-leader"
	RoleAreaLeader Role = "area-leader"
	RoleCellLeader Role = "cell-leader"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleZoneLeader, RoleAreaLeader, RoleCellLeader:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
