package companies

import "time"

// Company statuses.
const (
	StatusActive    = "active"
	StatusTrial     = "trial"
	StatusSuspended = "suspended"
)

// Company represents a tenant on the platform.
type Company struct {
	ID              string
	Name            string
	Document        string
	PlanID          string
	Status          string
	UserCount       int
	ConnectionCount int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ListFilter narrows company listings.
type ListFilter struct {
	Status string
	PlanID string
	Search string
	Limit  int
	Offset int
}
