package model

import "time"

// Role classifies what a user is allowed to do.
type Role string

const (
	RoleSysAdmin Role = "SYS_ADMIN"
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
)

// User represents a system account.
// This is a pure domain model with no database-specific dependencies or tags.
// Relations are expressed as foreign-key identifiers, never object graphs;
// callers look up the unit on demand.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	UnitID       *int64    `json:"unit_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
