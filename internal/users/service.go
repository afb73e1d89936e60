package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/atendezap/atendezap-admin/internal/identity"
	"github.com/atendezap/atendezap-admin/internal/shared"
)

var validRoles = map[string]bool{
	identity.RoleUser:       true,
	identity.RoleAgent:      true,
	identity.RoleAdmin:      true,
	identity.RoleSupport:    true,
	identity.RoleSuperAdmin: true,
}

// Service handles cross-company user management.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns users matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]User, int, error) {
	return s.repo.List(ctx, filter)
}

// Get fetches one user.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.Get(ctx, id)
}

// ChangeRole updates a user's role. Demoting the last active
// super administrator is refused: it would lock everyone out of the
// console for good.
func (s *Service) ChangeRole(ctx context.Context, id, role string) error {
	if !validRoles[role] {
		return fmt.Errorf("cargo inválido: %s", role)
	}
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == role {
		return nil
	}
	if user.Role == identity.RoleSuperAdmin && role != identity.RoleSuperAdmin {
		count, err := s.repo.CountByRole(ctx, identity.RoleSuperAdmin)
		if err != nil {
			return err
		}
		if count <= 1 {
			return errors.New("não é possível rebaixar o último super administrador")
		}
	}
	if err := s.repo.SetRole(ctx, id, role); err != nil {
		return err
	}
	s.record(ctx, "user.change_role", id, map[string]any{"from": user.Role, "to": role})
	return nil
}

// Deactivate disables an account. Same last-super-admin guard as
// ChangeRole.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return nil
	}
	if user.Role == identity.RoleSuperAdmin {
		count, err := s.repo.CountByRole(ctx, identity.RoleSuperAdmin)
		if err != nil {
			return err
		}
		if count <= 1 {
			return errors.New("não é possível desativar o último super administrador")
		}
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.record(ctx, "user.deactivate", id, nil)
	return nil
}

// Activate re-enables an account.
func (s *Service) Activate(ctx context.Context, id string) error {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if user.IsActive {
		return nil
	}
	if err := s.repo.SetActive(ctx, id, true); err != nil {
		return err
	}
	s.record(ctx, "user.activate", id, nil)
	return nil
}

func (s *Service) record(ctx context.Context, action, entityID string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		ActorID:  shared.ActorFromContext(ctx),
		Action:   action,
		Entity:   "profile",
		EntityID: entityID,
		Meta:     meta,
	})
}
