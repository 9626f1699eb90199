// Package policy contains the pure access rules applied across company
// ownership. The predicates never perform I/O; callers translate a false
// result into an authorization error at the boundary.
package policy

import (
	"github.com/hirecanvas/hirecanvas/internal/builder/models"
)

// CanEditCompany reports whether an actor may mutate a company. Admins may
// edit any company; recruiters only the companies they own.
func CanEditCompany(role models.Role, actorID, ownerID string) bool {
	if role == models.RoleAdmin {
		return true
	}
	if role == models.RoleRecruiter && actorID != "" && actorID == ownerID {
		return true
	}
	return false
}

// CanCreateCompany reports whether an actor's role permits creating a company.
func CanCreateCompany(role models.Role) bool {
	return role == models.RoleRecruiter || role == models.RoleAdmin
}

// CanCreateJob reports whether an actor's role permits creating jobs at all.
// Ownership of the target company is checked separately by
// CanCreateJobForCompany once the company is known.
func CanCreateJob(role models.Role) bool {
	return role == models.RoleRecruiter || role == models.RoleAdmin
}

// CanCreateJobForCompany reports whether an actor may create a job under
// the company owned by ownerID.
func CanCreateJobForCompany(role models.Role, actorID, ownerID string) bool {
	if role == models.RoleAdmin {
		return true
	}
	if role == models.RoleRecruiter && actorID != "" && actorID == ownerID {
		return true
	}
	return false
}
