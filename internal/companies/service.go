package companies

import (
	"context"
	"fmt"

	"github.com/atendezap/atendezap-admin/internal/platform/httpx"
	"github.com/atendezap/atendezap-admin/internal/shared"
)

// Service handles company management business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns companies matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Company, int, error) {
	return s.repo.List(ctx, filter)
}

// Get fetches one company.
func (s *Service) Get(ctx context.Context, id string) (*Company, error) {
	return s.repo.Get(ctx, id)
}

// Suspend blocks a tenant. Already-suspended companies error so the
// console can tell the operator nothing happened.
func (s *Service) Suspend(ctx context.Context, id string) error {
	company, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if company.Status == StatusSuspended {
		return fmt.Errorf("empresa %s já está suspensa: %w", company.Name, httpx.ErrValidation)
	}
	if err := s.repo.SetStatus(ctx, id, StatusSuspended); err != nil {
		return err
	}
	s.record(ctx, "company.suspend", id, map[string]any{"previous_status": company.Status})
	return nil
}

// Reactivate lifts a suspension.
func (s *Service) Reactivate(ctx context.Context, id string) error {
	company, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if company.Status != StatusSuspended {
		return fmt.Errorf("empresa %s não está suspensa: %w", company.Name, httpx.ErrValidation)
	}
	if err := s.repo.SetStatus(ctx, id, StatusActive); err != nil {
		return err
	}
	s.record(ctx, "company.reactivate", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, action, entityID string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "empresa",
		EntityID: entityID,
		Meta:     meta,
	})
}
