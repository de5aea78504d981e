// Package model defines the core domain models used throughout the application.
package model

import "time"

// Role identifies what a user is allowed to do.
type Role string

// Role constants for the fixed four-role model.
const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RolePartner   Role = "partner"
	RoleSubmitter Role = "submitter"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RolePartner, RoleSubmitter:
		return true
	}
	return false
}

// User represents an account in the system.
type User struct {
	CreatedAt time.Time
	ID        string
	Name      string
	Email     string
	PartnerID string // set for partner-scoped users
	Role      Role
	IsActive  bool
}
