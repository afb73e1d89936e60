package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atendezap/atendezap-admin/internal/shared"
)

// Repository defines record lookups against the profile store.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Principal, error)
	GetRole(ctx context.Context, principalID string) (string, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches a profile by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	const query = `SELECT id, email, nome, cargo, password_hash, is_active, created_at, updated_at FROM profiles WHERE lower(email) = lower($1)`
	var p Principal
	err := r.pool.QueryRow(ctx, query, email).Scan(&p.ID, &p.Email, &p.Name, &p.Role, &p.PasswordHash, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetRole fetches the role attribute for a principal.
func (r *PGRepository) GetRole(ctx context.Context, principalID string) (string, error) {
	const query = `SELECT cargo FROM profiles WHERE id = $1`
	var role string
	if err := r.pool.QueryRow(ctx, query, principalID).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

var _ Repository = (*PGRepository)(nil)
