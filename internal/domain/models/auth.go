package models

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// SystemActor is the username recorded when no authenticated identity is present.
const SystemActor = "system"

// Role is a caller's coarse permission level.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleViewer Role = "VIEWER"
)

// ParseRole maps a claim value to a Role. Unknown values become RoleViewer.
func ParseRole(s string) Role {
	name := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "ROLE_")
	switch Role(name) {
	case RoleAdmin:
		return RoleAdmin
	case RoleEditor:
		return RoleEditor
	default:
		return RoleViewer
	}
}

// Restricted reports whether the role only sees published content.
func (r Role) Restricted() bool {
	return r != RoleAdmin && r != RoleEditor
}

// Caller identifies who is invoking a service operation.
type Caller struct {
	Username string
	Role     Role
}

// NewCaller builds a Caller, falling back to the system actor for blank usernames.
func NewCaller(username string, role Role) Caller {
	username = strings.TrimSpace(username)
	if username == "" {
		username = SystemActor
	}
	return Caller{Username: username, Role: role}
}

// SystemCaller is the identity used by internal jobs and seeding.
func SystemCaller() Caller {
	return Caller{Username: SystemActor, Role: RoleAdmin}
}

// Actor returns the username to stamp on records, never blank.
func (c Caller) Actor() string {
	if strings.TrimSpace(c.Username) == "" {
		return SystemActor
	}
	return c.Username
}

// HasRole reports whether the caller holds one of the given roles.
func (c Caller) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// Claims is the JWT claim set accepted by the API: sub carries the username.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Caller converts verified claims into a Caller.
func (c *Claims) Caller() Caller {
	return NewCaller(c.Subject, ParseRole(c.Role))
}
