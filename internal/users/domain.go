package users

import "time"

// User represents a platform account as seen by the console.
type User struct {
	ID          string
	Email       string
	Name        string
	Role        string
	CompanyID   string
	CompanyName string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListFilter narrows user listings.
type ListFilter struct {
	CompanyID string
	Role      string
	Active    *bool
	Search    string
	Limit     int
	Offset    int
}
