package adminauth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/atendezap/atendezap-admin/internal/identity"
	"github.com/atendezap/atendezap-admin/internal/shared"
)

// State describes the gate as seen by the console.
type State int

const (
	// StateUnknown applies before the store has been consulted.
	StateUnknown State = iota
	// StateLocked means no valid elevated session exists.
	StateLocked
	// StateUnlocked means a valid elevated session is present.
	StateUnlocked
)

func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// User-facing login failure messages.
const (
	msgInvalidCredentials = "Email ou senha inválidos"
	msgPrincipalNotFound  = "Usuário não encontrado"
	msgAccessDenied       = "Acesso negado. Apenas super administradores podem acessar esta área."
	msgLoginFailed        = "Erro ao fazer login"
)

// Authenticator checks email/password credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*identity.Principal, error)
}

// CapabilityVerifier decides whether a principal holds the elevated role.
type CapabilityVerifier interface {
	Verify(ctx context.Context, principalID string) identity.Decision
}

// LoginResult is the structured outcome of a login attempt. Login
// never returns a Go error to its caller; failures are carried here so
// the console can render the message inline. Reason keeps the failure
// class distinguishable (credentials vs. missing principal vs. denied
// authorization) even though all surface as a failed login.
type LoginResult struct {
	Success     bool
	Error       string
	Reason      error
	PrincipalID string
}

// Gate orchestrates login attempts and exposes the elevation state.
// It is the only component that mutates the elevated-session store.
type Gate struct {
	store    *Store
	identity Authenticator
	verifier CapabilityVerifier
	logger   *slog.Logger
}

// NewGate constructs a Gate.
func NewGate(store *Store, authenticator Authenticator, verifier CapabilityVerifier, logger *slog.Logger) *Gate {
	return &Gate{store: store, identity: authenticator, verifier: verifier, logger: logger}
}

// Resolve settles the gate state for a console session by reading the
// store. Expiry is detected here, on read, not by a timer: a session
// that aged out while the console sat idle reports Locked with no
// error, which the console treats as a normal re-authentication.
func (g *Gate) Resolve(ctx context.Context, sid string) (State, error) {
	sess, err := g.store.Read(ctx, sid)
	if err != nil {
		return StateLocked, err
	}
	if sess == nil || !sess.Active {
		return StateLocked, nil
	}
	return StateUnlocked, nil
}

// Login runs the two independent gates in order: credential check
// first, then the capability check. Passing the first never implies
// the second.
func (g *Gate) Login(ctx context.Context, sid, email, password string) LoginResult {
	principal, err := g.identity.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return LoginResult{Error: msgInvalidCredentials, Reason: shared.ErrInvalidCredentials}
		}
		if g.logger != nil {
			g.logger.Error("credential check failed", slog.Any("error", err))
		}
		return LoginResult{Error: msgLoginFailed, Reason: err}
	}
	if principal == nil {
		return LoginResult{Error: msgPrincipalNotFound, Reason: shared.ErrPrincipalNotFound}
	}

	decision := g.verifier.Verify(ctx, principal.ID)
	if !decision.Authorized {
		if g.logger != nil {
			g.logger.Warn("admin access denied",
				slog.String("principal_id", principal.ID),
				slog.String("reason", decision.Reason))
		}
		return LoginResult{Error: msgAccessDenied, Reason: shared.ErrAccessDenied, PrincipalID: principal.ID}
	}

	if err := g.store.Save(ctx, sid); err != nil {
		if g.logger != nil {
			g.logger.Error("save elevated session", slog.Any("error", err))
		}
		return LoginResult{Error: msgLoginFailed, Reason: err, PrincipalID: principal.ID}
	}
	return LoginResult{Success: true, PrincipalID: principal.ID}
}

// Logout clears the elevated session unconditionally, regardless of
// current state. Safe to call repeatedly.
func (g *Gate) Logout(ctx context.Context, sid string) error {
	return g.store.Clear(ctx, sid)
}
