package model

import (
	"time"

	"github.com/google/uuid"
)

// Application roles, from highest to lowest privilege.
const (
	RoleSuperAdmin  = "SUPER_ADMIN"
	RoleAdmin       = "ADMIN"
	RoleCoordenador = "COORDENADOR"
	RoleOperador    = "OPERADOR"
)

// AllRoles lists every valid role value.
var AllRoles = []string{RoleSuperAdmin, RoleAdmin, RoleCoordenador, RoleOperador}

// ValidRole reports whether r is a known role value.
func ValidRole(r string) bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// roleRank orders roles for the "X or above" checks. Higher is stronger.
var roleRank = map[string]int{
	RoleOperador:    1,
	RoleCoordenador: 2,
	RoleAdmin:       3,
	RoleSuperAdmin:  4,
}

// RoleAtLeast reports whether role `have` is at least as privileged as `want`.
func RoleAtLeast(have, want string) bool {
	return roleRank[have] >= roleRank[want]
}

// UserRole is a role assignment. CreatedBy records which account granted the
// role (audit trail). A user holds at most one row per role value.
type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_role"`
	Role      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_role"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	User    *User `gorm:"foreignKey:UserID"`
	Granter *User `gorm:"foreignKey:CreatedBy"`
}

func (UserRole) TableName() string { return "user_roles" }
