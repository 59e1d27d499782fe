package domain

import "fmt"

// Role of an authenticated account
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// ParseRole validates a role claim
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCustomer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("domain: unknown role %q", s)
	}
}

// Requester is the already-authenticated caller of an operation
type Requester struct {
	ID   int64
	Role Role
}

// IsAdmin returns true for elevated privilege
func (r Requester) IsAdmin() bool {
	return r.Role == RoleAdmin
}

// CanAccess returns true if the requester owns the record or is an admin
func (r Requester) CanAccess(ownerID int64) bool {
	return r.IsAdmin() || r.ID == ownerID
}
