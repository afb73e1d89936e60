package integrations

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atendezap/atendezap-admin/internal/shared"
)

// RepositoryPort defines data access methods for integrations.
type RepositoryPort interface {
	ListConnections(ctx context.Context, companyID string) ([]Connection, error)
	ActiveConfig(ctx context.Context) (*GatewayConfig, error)
	MarkStatuses(ctx context.Context, status string, olderThan time.Duration) (int64, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListConnections returns connections, optionally scoped to a tenant.
func (r *Repository) ListConnections(ctx context.Context, companyID string) ([]Connection, error) {
	const query = `
SELECT w.id, w.empresa_id, COALESCE(e.nome, ''), w.nome, w.numero, COALESCE(w.status, 'desconectado'), w.ativo, w.ultimo_ping, w.created_at
FROM whatsapp_connections w
LEFT JOIN empresas e ON e.id = w.empresa_id
WHERE ($1 = '' OR w.empresa_id::text = $1)
ORDER BY w.created_at DESC`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var connections []Connection
	for rows.Next() {
		var c Connection
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.CompanyName, &c.Name, &c.Number, &c.Status, &c.Active, &c.LastPing, &c.CreatedAt); err != nil {
			return nil, err
		}
		connections = append(connections, c)
	}
	return connections, rows.Err()
}

// ActiveConfig returns the single active Evolution API configuration.
func (r *Repository) ActiveConfig(ctx context.Context) (*GatewayConfig, error) {
	const query = `
SELECT instance_name, COALESCE(webhook_url, ''), ativo, COALESCE(status, ''), last_connected_at
FROM evolution_api_config WHERE ativo LIMIT 1`
	var cfg GatewayConfig
	err := r.pool.QueryRow(ctx, query).Scan(&cfg.InstanceName, &cfg.WebhookURL, &cfg.Active, &cfg.Status, &cfg.LastConnectedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

// MarkStatuses downgrades connections whose last ping is older than
// the cutoff. Used by the sync worker.
func (r *Repository) MarkStatuses(ctx context.Context, status string, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	tag, err := r.pool.Exec(ctx, `
UPDATE whatsapp_connections
SET status = $1
WHERE ativo AND status <> $1 AND (ultimo_ping IS NULL OR ultimo_ping < $2)`, status, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ RepositoryPort = (*Repository)(nil)
