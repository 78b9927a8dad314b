package user

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
	// RoleSystem is never issued in tokens; it marks timeouts, webhooks and workers.
	RoleSystem Role = "system"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin, RoleSystem:
		return true
	default:
		return false
	}
}

// NewRole parses roles that may appear in an access token.
func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() || role == RoleSystem {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Actor is whoever triggers a state change.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func SystemActor() Actor {
	return Actor{ID: uuid.Nil, Role: RoleSystem}
}

func (a Actor) IsAdmin() bool  { return a.Role == RoleAdmin }
func (a Actor) IsSystem() bool { return a.Role == RoleSystem }

// IsPrivileged reports whether the actor may act on any booking.
func (a Actor) IsPrivileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleSystem
}
