package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atendezap/atendezap-admin/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	List(ctx context.Context, filter ListFilter) ([]User, int, error)
	Get(ctx context.Context, id string) (*User, error)
	SetRole(ctx context.Context, id, role string) error
	SetActive(ctx context.Context, id string, active bool) error
	CountByRole(ctx context.Context, role string) (int, error)
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
SELECT p.id, p.email, p.nome, p.cargo, p.empresa_id, COALESCE(e.nome, ''), p.is_active, p.created_at, p.updated_at,
       COUNT(*) OVER() AS total
FROM profiles p
LEFT JOIN empresas e ON e.id = p.empresa_id
WHERE ($1 = '' OR p.empresa_id::text = $1)
  AND ($2 = '' OR p.cargo = $2)
  AND ($3::boolean IS NULL OR p.is_active = $3)
  AND ($4 = '' OR p.email ILIKE '%' || $4 || '%' OR p.nome ILIKE '%' || $4 || '%')
ORDER BY p.created_at DESC
LIMIT $5 OFFSET $6`

// List returns users matching the filter plus the unpaged total.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]User, int, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, listQuery, filter.CompanyID, filter.Role, filter.Active, filter.Search, limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		users []User
		total int
	)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CompanyID, &u.CompanyName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// Get fetches one user.
func (r *Repository) Get(ctx context.Context, id string) (*User, error) {
	const query = `
SELECT p.id, p.email, p.nome, p.cargo, p.empresa_id, COALESCE(e.nome, ''), p.is_active, p.created_at, p.updated_at
FROM profiles p
LEFT JOIN empresas e ON e.id = p.empresa_id
WHERE p.id = $1`
	var u User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CompanyID, &u.CompanyName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// SetRole updates the role attribute.
func (r *Repository) SetRole(ctx context.Context, id, role string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE profiles SET cargo = $2, updated_at = NOW() WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetActive flips the account's active flag.
func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE profiles SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByRole counts active accounts holding a role.
func (r *Repository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE cargo = $1 AND is_active`, role).Scan(&count)
	return count, err
}

var _ RepositoryPort = (*Repository)(nil)
