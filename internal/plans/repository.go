package plans

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atendezap/atendezap-admin/internal/platform/httpx"
	"github.com/atendezap/atendezap-admin/internal/shared"
)

// RepositoryPort defines data access methods for plans.
type RepositoryPort interface {
	List(ctx context.Context) ([]Plan, error)
	Get(ctx context.Context, id string) (*Plan, error)
	Create(ctx context.Context, input PlanInput) (*Plan, error)
	Update(ctx context.Context, id string, input PlanInput) error
	SetActive(ctx context.Context, id string, active bool) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns all plans with tenant counts.
func (r *Repository) List(ctx context.Context) ([]Plan, error) {
	const query = `
SELECT p.id, p.nome, p.price_cents, p.max_users, p.max_connections, p.features, p.is_active, p.created_at, p.updated_at,
       (SELECT COUNT(*) FROM empresas e WHERE e.plan_id = p.id)
FROM plans p
ORDER BY p.price_cents ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.MaxUsers, &p.MaxConnections, &p.Features, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.CompanyCount); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Get fetches one plan.
func (r *Repository) Get(ctx context.Context, id string) (*Plan, error) {
	const query = `
SELECT p.id, p.nome, p.price_cents, p.max_users, p.max_connections, p.features, p.is_active, p.created_at, p.updated_at,
       (SELECT COUNT(*) FROM empresas e WHERE e.plan_id = p.id)
FROM plans p WHERE p.id = $1`
	var p Plan
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.PriceCents, &p.MaxUsers, &p.MaxConnections, &p.Features, &p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.CompanyCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a new plan. Duplicate names map to httpx.ErrDuplicate.
func (r *Repository) Create(ctx context.Context, input PlanInput) (*Plan, error) {
	id := uuid.NewString()
	const query = `
INSERT INTO plans (id, nome, price_cents, max_users, max_connections, features, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())`
	_, err := r.pool.Exec(ctx, query, id, input.Name, input.PriceCents, input.MaxUsers, input.MaxConnections, input.Features)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return r.Get(ctx, id)
}

// Update rewrites a plan's mutable fields.
func (r *Repository) Update(ctx context.Context, id string, input PlanInput) error {
	const query = `
UPDATE plans SET nome = $2, price_cents = $3, max_users = $4, max_connections = $5, features = $6, updated_at = NOW()
WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, input.Name, input.PriceCents, input.MaxUsers, input.MaxConnections, input.Features)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetActive flips a plan's availability.
func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE plans SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httpx.ErrDuplicate
	}
	return err
}

var _ RepositoryPort = (*Repository)(nil)
