package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort defines data access methods for analytics.
type RepositoryPort interface {
	CountCompanies(ctx context.Context, onlyActive bool) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountConnectedIntegrations(ctx context.Context) (int64, error)
	CountMessagesToday(ctx context.Context) (int64, error)
	MessagesPerDay(ctx context.Context, days int) ([]SeriesPoint, error)
}

// Repository provides PostgreSQL backed aggregation queries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CountCompanies(ctx context.Context, onlyActive bool) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM empresas WHERE ($1 = false OR status = 'active')`, onlyActive).Scan(&total)
	return total, err
}

func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total)
	return total, err
}

func (r *Repository) CountConnectedIntegrations(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM whatsapp_connections WHERE ativo AND status = 'conectado'`).Scan(&total)
	return total, err
}

func (r *Repository) CountMessagesToday(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM mensagens WHERE created_at >= date_trunc('day', NOW())`).Scan(&total)
	return total, err
}

// MessagesPerDay returns daily message counts for the trailing window.
func (r *Repository) MessagesPerDay(ctx context.Context, days int) ([]SeriesPoint, error) {
	const query = `
SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day, COUNT(*)
FROM mensagens
WHERE created_at >= date_trunc('day', NOW()) - ($1 || ' days')::interval
GROUP BY 1
ORDER BY 1`
	rows, err := r.pool.Query(ctx, query, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []SeriesPoint
	for rows.Next() {
		var p SeriesPoint
		if err := rows.Scan(&p.Day, &p.Count); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

var _ RepositoryPort = (*Repository)(nil)
