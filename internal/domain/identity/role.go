package identity

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Role represents the role of a user in the system.
// The set is closed: role-based dispatch must match exhaustively instead of
// comparing open-ended strings.
type Role string

const (
	// RoleAdmin is a platform operator with access to every tenant
	RoleAdmin Role = "admin"
	// RoleMerchant is a tenant-bound merchant user (including impersonated
	// admin sessions acting as a merchant)
	RoleMerchant Role = "merchant"
	// RoleCustomer is an end customer submitting return requests
	RoleCustomer Role = "customer"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleMerchant, RoleCustomer}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMerchant, RoleCustomer:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Scan implements the sql.Scanner interface
func (r *Role) Scan(value any) error {
	if value == nil {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("identity: cannot scan type %T into Role", value)
	}
	*r = Role(strings.ToLower(s))
	if !r.IsValid() {
		return fmt.Errorf("identity: invalid role: %s", s)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}
