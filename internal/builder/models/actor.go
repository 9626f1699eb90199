package models

import "fmt"

// Role is the access level carried by an authenticated identity.
type Role string

const (
	// RoleAdmin can manage every tenant.
	RoleAdmin Role = "admin"
	// RoleRecruiter can manage the companies it owns.
	RoleRecruiter Role = "recruiter"
	// RoleCandidate can only browse published pages.
	RoleCandidate Role = "candidate"
)

// ParseRole validates a raw role claim against the fixed enumeration.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleRecruiter, RoleCandidate:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Actor is the validated identity driving a request. It is constructed at
// the trust boundary from the identity provider's token claims; nothing
// deeper in the system reads raw claims.
type Actor struct {
	// ID is the identity provider's subject identifier.
	ID string
	// Role is the actor's validated access level.
	Role Role
}
