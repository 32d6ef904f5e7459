package model

import "time"

const (
	RoleAdmin      = "ROLE_ADMIN"
	RoleUser       = "ROLE_USER"
	RoleResearcher = "ROLE_RESEARCHER"
	RoleEngineer   = "ROLE_ENGINEER"
	RolePremium    = "ROLE_PREMIUM"
)

// validRoles is the closed set of roles a signup request may carry.
var validRoles = map[string]bool{
	RoleAdmin:      true,
	RoleUser:       true,
	RoleResearcher: true,
	RoleEngineer:   true,
	RolePremium:    true,
}

// NormalizeRole coerces a role outside the allowed set to RoleUser.
// Invalid roles are substituted, never rejected.
func NormalizeRole(role string) string {
	if validRoles[role] {
		return role
	}
	return RoleUser
}

// User represents a registered account
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
}
