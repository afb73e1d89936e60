package adminauth

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendezap/atendezap-admin/internal/identity"
	"github.com/atendezap/atendezap-admin/internal/shared"
)

type stubAuthenticator struct {
	principal *identity.Principal
	err       error
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, email, password string) (*identity.Principal, error) {
	return s.principal, s.err
}

type stubVerifier struct {
	decision identity.Decision
	calls    int
}

func (s *stubVerifier) Verify(ctx context.Context, principalID string) identity.Decision {
	s.calls++
	return s.decision
}

func newTestGate(t *testing.T, auth Authenticator, verifier CapabilityVerifier) (*Gate, *Store) {
	t.Helper()
	store, _ := newTestStore(t)
	return NewGate(store, auth, verifier, nil), store
}

func TestLoginRejectedCredentials(t *testing.T) {
	verifier := &stubVerifier{decision: identity.Decision{Authorized: true}}
	gate, store := newTestGate(t, &stubAuthenticator{err: shared.ErrInvalidCredentials}, verifier)
	ctx := context.Background()

	result := gate.Login(ctx, "sid-1", "op@atendezap.com", "wrong")
	assert.False(t, result.Success)
	assert.Equal(t, "Email ou senha inválidos", result.Error)
	assert.ErrorIs(t, result.Reason, shared.ErrInvalidCredentials)
	assert.Zero(t, verifier.calls, "verifier must not run when credentials fail")

	state, err := gate.Resolve(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, StateLocked, state)

	sess, err := store.Read(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLoginDeniedWithoutElevatedRole(t *testing.T) {
	principal := &identity.Principal{ID: "p-1", Email: "suporte@atendezap.com", Role: identity.RoleSupport}
	verifier := &stubVerifier{decision: identity.Decision{Authorized: false, Reason: "cargo sem privilégio"}}
	gate, store := newTestGate(t, &stubAuthenticator{principal: principal}, verifier)
	ctx := context.Background()

	result := gate.Login(ctx, "sid-1", principal.Email, "correct")
	assert.False(t, result.Success)
	assert.Equal(t, "Acesso negado. Apenas super administradores podem acessar esta área.", result.Error)
	assert.ErrorIs(t, result.Reason, shared.ErrAccessDenied)
	assert.Equal(t, 1, verifier.calls, "authorization runs even though authentication passed")

	state, err := gate.Resolve(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, StateLocked, state)

	sess, err := store.Read(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLoginMissingPrincipal(t *testing.T) {
	gate, _ := newTestGate(t, &stubAuthenticator{}, &stubVerifier{})

	result := gate.Login(context.Background(), "sid-1", "x@atendezap.com", "pw")
	assert.False(t, result.Success)
	assert.Equal(t, "Usuário não encontrado", result.Error)
	assert.ErrorIs(t, result.Reason, shared.ErrPrincipalNotFound)
}

func TestLoginAuthorizedUnlocks(t *testing.T) {
	principal := &identity.Principal{ID: "p-1", Email: "root@atendezap.com", Role: identity.RoleSuperAdmin}
	gate, store := newTestGate(t, &stubAuthenticator{principal: principal}, &stubVerifier{decision: identity.Decision{Authorized: true}})
	ctx := context.Background()

	before := time.Now()
	result := gate.Login(ctx, "sid-1", principal.Email, "correct")
	require.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.NoError(t, result.Reason)
	assert.Equal(t, "p-1", result.PrincipalID)

	state, err := gate.Resolve(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, StateUnlocked, state)

	sess, err := store.Read(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.True(t, sess.Active)
	assert.WithinDuration(t, before, sess.GrantedAt, 2*time.Second)
}

func TestResolveDetectsExpiryWhileIdle(t *testing.T) {
	principal := &identity.Principal{ID: "p-1", Role: identity.RoleSuperAdmin}
	store, mr := newTestStore(t)
	gate := NewGate(store, &stubAuthenticator{principal: principal}, &stubVerifier{decision: identity.Decision{Authorized: true}}, nil)
	ctx := context.Background()

	require.True(t, gate.Login(ctx, "sid-1", "root@atendezap.com", "pw").Success)

	stale := time.Now().Add(-3 * time.Hour).UnixMilli()
	mr.Set(grantedKey("sid-1"), strconv.FormatInt(stale, 10))

	state, err := gate.Resolve(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, StateLocked, state, "expiry is reported as a plain Locked state, not an error")
}

func TestLogoutIdempotentFromAnyState(t *testing.T) {
	gate, store := newTestGate(t, &stubAuthenticator{}, &stubVerifier{})
	ctx := context.Background()

	// Two back-to-back logouts with no prior login succeed silently.
	require.NoError(t, gate.Logout(ctx, "sid-1"))
	require.NoError(t, gate.Logout(ctx, "sid-1"))

	state, err := gate.Resolve(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, StateLocked, state)

	sess, err := store.Read(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLogoutAfterLoginLocks(t *testing.T) {
	principal := &identity.Principal{ID: "p-1", Role: identity.RoleSuperAdmin}
	gate, store := newTestGate(t, &stubAuthenticator{principal: principal}, &stubVerifier{decision: identity.Decision{Authorized: true}})
	ctx := context.Background()

	require.True(t, gate.Login(ctx, "sid-1", "root@atendezap.com", "pw").Success)
	require.NoError(t, gate.Logout(ctx, "sid-1"))

	state, err := gate.Resolve(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, StateLocked, state)

	sess, err := store.Read(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}
