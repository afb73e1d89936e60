package companies

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atendezap/atendezap-admin/internal/shared"
)

// RepositoryPort defines data access methods for companies.
type RepositoryPort interface {
	List(ctx context.Context, filter ListFilter) ([]Company, int, error)
	Get(ctx context.Context, id string) (*Company, error)
	SetStatus(ctx context.Context, id, status string) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const listQuery = `
SELECT e.id, e.nome, e.documento, e.plan_id, e.status, e.created_at, e.updated_at,
       (SELECT COUNT(*) FROM profiles p WHERE p.empresa_id = e.id) AS user_count,
       (SELECT COUNT(*) FROM whatsapp_connections w WHERE w.empresa_id = e.id) AS connection_count,
       COUNT(*) OVER() AS total
FROM empresas e
WHERE ($1 = '' OR e.status = $1)
  AND ($2 = '' OR e.plan_id = $2)
  AND ($3 = '' OR e.nome ILIKE '%' || $3 || '%' OR e.documento ILIKE '%' || $3 || '%')
ORDER BY e.created_at DESC
LIMIT $4 OFFSET $5`

// List returns companies matching the filter plus the unpaged total.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Company, int, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, listQuery, filter.Status, filter.PlanID, filter.Search, limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		companies []Company
		total     int
	)
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Document, &c.PlanID, &c.Status, &c.CreatedAt, &c.UpdatedAt, &c.UserCount, &c.ConnectionCount, &total); err != nil {
			return nil, 0, err
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

// Get fetches one company with usage counts.
func (r *Repository) Get(ctx context.Context, id string) (*Company, error) {
	const query = `
SELECT e.id, e.nome, e.documento, e.plan_id, e.status, e.created_at, e.updated_at,
       (SELECT COUNT(*) FROM profiles p WHERE p.empresa_id = e.id),
       (SELECT COUNT(*) FROM whatsapp_connections w WHERE w.empresa_id = e.id)
FROM empresas e WHERE e.id = $1`
	var c Company
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Document, &c.PlanID, &c.Status, &c.CreatedAt, &c.UpdatedAt, &c.UserCount, &c.ConnectionCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// SetStatus updates a company's status.
func (r *Repository) SetStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE empresas SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ RepositoryPort = (*Repository)(nil)
