package access

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

var roles = []Role{RoleAdmin, RoleManager, RoleEmployee, RoleClient}

// ParseRole accepts the four known roles, case-insensitively.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Staff roles bypass ownership checks on bookings.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager
}

// Identity is what a valid session resolves to.
type Identity struct {
	UserID    uint
	Role      Role
	SessionID string
}
