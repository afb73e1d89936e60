package plans

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/atendezap/atendezap-admin/internal/platform/httpx"
	"github.com/atendezap/atendezap-admin/internal/shared"
)

// Service handles plan catalog business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns all plans with display names.
func (s *Service) List(ctx context.Context) ([]Plan, error) {
	plans, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		plans[i].DisplayName = DisplayName(plans[i].Name)
	}
	return plans, nil
}

// Get fetches one plan.
func (s *Service) Get(ctx context.Context, id string) (*Plan, error) {
	plan, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.DisplayName = DisplayName(plan.Name)
	return plan, nil
}

// Create adds a plan to the catalog.
func (s *Service) Create(ctx context.Context, input PlanInput) (*Plan, error) {
	plan, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	plan.DisplayName = DisplayName(plan.Name)
	s.record(ctx, "plan.create", plan.ID, map[string]any{"name": plan.Name})
	return plan, nil
}

// Update rewrites a plan's mutable fields.
func (s *Service) Update(ctx context.Context, id string, input PlanInput) error {
	if err := s.repo.Update(ctx, id, input); err != nil {
		return err
	}
	s.record(ctx, "plan.update", id, map[string]any{"name": input.Name})
	return nil
}

// Deactivate withdraws a plan from sale. Plans still referenced by
// tenants keep working; they just stop being offered.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	plan, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !plan.IsActive {
		return fmt.Errorf("plano já está inativo: %w", httpx.ErrValidation)
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.record(ctx, "plan.deactivate", id, nil)
	return nil
}

// DisplayName renders a stored plan name for the console, title-cased
// with Brazilian Portuguese rules. The caser is built per call: a
// cases.Caser carries internal state and must not be shared across
// goroutines.
func DisplayName(name string) string {
	return cases.Title(language.BrazilianPortuguese).String(name)
}

func (s *Service) record(ctx context.Context, action, entityID string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "plan",
		EntityID: entityID,
		Meta:     meta,
	})
}
