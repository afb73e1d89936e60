package integrations

import (
	"context"

	"github.com/hibiken/asynq"

	"github.com/atendezap/atendezap-admin/internal/shared"
	"github.com/atendezap/atendezap-admin/jobs"
)

// Enqueuer submits background tasks. *asynq.Client satisfies it.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Service handles integration management.
type Service struct {
	repo     RepositoryPort
	enqueuer Enqueuer
	audit    *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, enqueuer Enqueuer, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, enqueuer: enqueuer, audit: audit}
}

// ListConnections returns connections, optionally scoped to a tenant.
func (s *Service) ListConnections(ctx context.Context, companyID string) ([]Connection, error) {
	return s.repo.ListConnections(ctx, companyID)
}

// ActiveConfig returns the active gateway configuration.
func (s *Service) ActiveConfig(ctx context.Context) (*GatewayConfig, error) {
	return s.repo.ActiveConfig(ctx)
}

// RequestSync enqueues a connection-status sync. The worker, not this
// call, talks to the gateway; the console gets an immediate ack.
func (s *Service) RequestSync(ctx context.Context) error {
	task, err := jobs.NewConnectionsSyncTask()
	if err != nil {
		return err
	}
	if _, err := s.enqueuer.EnqueueContext(ctx, task, asynq.MaxRetry(3), asynq.Queue(jobs.QueueDefault)); err != nil {
		return err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			ActorID:  shared.ActorFromContext(ctx),
			Action:   "integrations.sync",
			Entity:   "whatsapp_connections",
			EntityID: "all",
		})
	}
	return nil
}
