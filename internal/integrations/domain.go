package integrations

import "time"

// Connection statuses reported by the gateway.
const (
	StatusConnected    = "conectado"
	StatusDisconnected = "desconectado"
	StatusPairing      = "pareando"
)

// Connection represents a WhatsApp connection owned by a tenant.
type Connection struct {
	ID          string
	CompanyID   string
	CompanyName string
	Name        string
	Number      string
	Status      string
	Active      bool
	LastPing    *time.Time
	CreatedAt   time.Time
}

// GatewayConfig is the active Evolution API configuration.
type GatewayConfig struct {
	InstanceName    string
	WebhookURL      string
	Active          bool
	Status          string
	LastConnectedAt *time.Time
}
