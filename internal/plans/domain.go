package plans

import "time"

// Plan represents a subscription tier offered to tenants.
type Plan struct {
	ID             string
	Name           string
	DisplayName    string
	PriceCents     int64
	MaxUsers       int
	MaxConnections int
	Features       []string
	IsActive       bool
	CompanyCount   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PlanInput carries create/update fields.
type PlanInput struct {
	Name           string   `json:"name" validate:"required,min=2,max=60"`
	PriceCents     int64    `json:"price_cents" validate:"gte=0"`
	MaxUsers       int      `json:"max_users" validate:"gt=0"`
	MaxConnections int      `json:"max_connections" validate:"gt=0"`
	Features       []string `json:"features" validate:"dive,required"`
}
