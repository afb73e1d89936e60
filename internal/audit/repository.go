package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one persisted console action.
type Entry struct {
	ID         int64          `json:"id"`
	ActorID    string         `json:"actor_id"`
	Action     string         `json:"action"`
	Entity     string         `json:"entity"`
	EntityID   string         `json:"entity_id"`
	Meta       map[string]any `json:"meta,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Filter narrows audit listings.
type Filter struct {
	ActorID string
	Entity  string
	Limit   int
	Offset  int
}

// RepositoryPort defines data access methods for audit entries.
type RepositoryPort interface {
	List(ctx context.Context, filter Filter) ([]Entry, int64, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns entries matching the filter plus the total count.
func (r *Repository) List(ctx context.Context, filter Filter) ([]Entry, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	const query = `
SELECT id, actor_id, action, entity, entity_id, meta, occurred_at, COUNT(*) OVER() AS total
FROM admin_audit_logs
WHERE ($1 = '' OR actor_id = $1)
  AND ($2 = '' OR entity = $2)
ORDER BY occurred_at DESC
LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, query, filter.ActorID, filter.Entity, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		entries []Entry
		total   int64
	)
	for rows.Next() {
		var (
			e       Entry
			rawMeta []byte
		)
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &rawMeta, &e.OccurredAt, &total); err != nil {
			return nil, 0, err
		}
		if len(rawMeta) > 0 {
			_ = json.Unmarshal(rawMeta, &e.Meta)
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

var _ RepositoryPort = (*Repository)(nil)
