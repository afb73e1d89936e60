package identity

import "time"

// Role values stored on profile records.
const (
	RoleUser       = "user"
	RoleAgent      = "agent"
	RoleAdmin      = "admin"
	RoleSupport    = "support"
	RoleSuperAdmin = "super_admin"
)

// Principal represents an authenticated platform account.
type Principal struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
