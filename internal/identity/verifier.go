package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/atendezap/atendezap-admin/internal/shared"
)

// Decision is the outcome of an admin-capability check.
type Decision struct {
	Authorized bool
	Reason     string
}

// Verifier checks whether a principal holds the elevated role required
// for admin access. Authentication and authorization are independent
// gates: a verified password says nothing about capability.
type Verifier struct {
	repo   Repository
	logger *slog.Logger
}

// NewVerifier constructs a Verifier.
func NewVerifier(repo Repository, logger *slog.Logger) *Verifier {
	return &Verifier{repo: repo, logger: logger}
}

// Verify reports whether the principal may exercise admin capabilities.
// It never returns an error: lookup failures and missing records both
// come back as a denial with a human-readable reason.
func (v *Verifier) Verify(ctx context.Context, principalID string) Decision {
	if principalID == "" {
		return Decision{Authorized: false, Reason: "identificador de usuário ausente"}
	}
	role, err := v.repo.GetRole(ctx, principalID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Decision{Authorized: false, Reason: "perfil não encontrado"}
		}
		if v.logger != nil {
			v.logger.Warn("role lookup failed", slog.String("principal_id", principalID), slog.Any("error", err))
		}
		return Decision{Authorized: false, Reason: "falha ao consultar o perfil"}
	}
	if role != RoleSuperAdmin {
		return Decision{Authorized: false, Reason: "cargo sem privilégio de super administrador"}
	}
	return Decision{Authorized: true}
}
