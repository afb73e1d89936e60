package queues

import (
	"context"
	"sort"

	"github.com/hibiken/asynq"

	"github.com/atendezap/atendezap-admin/internal/shared"
)

// QueueStats is a console-facing snapshot of one queue.
type QueueStats struct {
	Name      string `json:"name"`
	Paused    bool   `json:"paused"`
	Size      int    `json:"size"`
	Active    int    `json:"active"`
	Pending   int    `json:"pending"`
	Scheduled int    `json:"scheduled"`
	Retry     int    `json:"retry"`
	Archived  int    `json:"archived"`
	Processed int    `json:"processed_today"`
	Failed    int    `json:"failed_today"`
	Latency   string `json:"latency"`
}

// Inspector is the slice of asynq.Inspector the console needs.
type Inspector interface {
	Queues() ([]string, error)
	GetQueueInfo(qname string) (*asynq.QueueInfo, error)
	PauseQueue(qname string) error
	UnpauseQueue(qname string) error
}

// Service exposes broker queue monitoring and control.
type Service struct {
	inspector Inspector
	audit     *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(inspector Inspector, audit *shared.AuditLogger) *Service {
	return &Service{inspector: inspector, audit: audit}
}

// List returns stats for every known queue, sorted by name.
func (s *Service) List(ctx context.Context) ([]QueueStats, error) {
	names, err := s.inspector.Queues()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	stats := make([]QueueStats, 0, len(names))
	for _, name := range names {
		info, err := s.inspector.GetQueueInfo(name)
		if err != nil {
			return nil, err
		}
		stats = append(stats, QueueStats{
			Name:      info.Queue,
			Paused:    info.Paused,
			Size:      info.Size,
			Active:    info.Active,
			Pending:   info.Pending,
			Scheduled: info.Scheduled,
			Retry:     info.Retry,
			Archived:  info.Archived,
			Processed: info.Processed,
			Failed:    info.Failed,
			Latency:   info.Latency.String(),
		})
	}
	return stats, nil
}

// Pause stops task dispatch from a queue.
func (s *Service) Pause(ctx context.Context, name string) error {
	if err := s.inspector.PauseQueue(name); err != nil {
		return err
	}
	s.record(ctx, "queue.pause", name)
	return nil
}

// Resume re-enables task dispatch from a queue.
func (s *Service) Resume(ctx context.Context, name string) error {
	if err := s.inspector.UnpauseQueue(name); err != nil {
		return err
	}
	s.record(ctx, "queue.resume", name)
	return nil
}

func (s *Service) record(ctx context.Context, action, name string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "queue",
		EntityID: name,
	})
}
