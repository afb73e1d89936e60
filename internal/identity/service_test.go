package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/atendezap/atendezap-admin/internal/shared"
	_ "github.com/atendezap/atendezap-admin/testing"
)

type mockRepo struct {
	principal *Principal
	findErr   error
	roleErr   error
}

func (m *mockRepo) FindByEmail(ctx context.Context, email string) (*Principal, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.principal, nil
}

func (m *mockRepo) GetRole(ctx context.Context, principalID string) (string, error) {
	if m.roleErr != nil {
		return "", m.roleErr
	}
	if m.principal == nil {
		return "", shared.ErrNotFound
	}
	return m.principal.Role, nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestAuthenticateSuccess(t *testing.T) {
	repo := &mockRepo{principal: &Principal{
		ID:           "p-1",
		Email:        "op@atendezap.com",
		Role:         RoleSuperAdmin,
		PasswordHash: hashOf(t, "s3cretpass"),
		IsActive:     true,
	}}
	svc := NewService(repo)

	principal, err := svc.Authenticate(context.Background(), "op@atendezap.com", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "p-1", principal.ID)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := &mockRepo{principal: &Principal{
		PasswordHash: hashOf(t, "s3cretpass"),
		IsActive:     true,
	}}
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "op@atendezap.com", "nope")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := NewService(&mockRepo{findErr: shared.ErrNotFound})

	_, err := svc.Authenticate(context.Background(), "ghost@atendezap.com", "whatever")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	repo := &mockRepo{principal: &Principal{
		PasswordHash: hashOf(t, "s3cretpass"),
		IsActive:     false,
	}}
	svc := NewService(repo)

	_, err := svc.Authenticate(context.Background(), "op@atendezap.com", "s3cretpass")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateLookupFailureIsNotCredentialError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(&mockRepo{findErr: boom})

	_, err := svc.Authenticate(context.Background(), "op@atendezap.com", "pw")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestVerifySuperAdmin(t *testing.T) {
	v := NewVerifier(&mockRepo{principal: &Principal{Role: RoleSuperAdmin}}, nil)

	decision := v.Verify(context.Background(), "p-1")
	assert.True(t, decision.Authorized)
	assert.Empty(t, decision.Reason)
}

func TestVerifyDeniesOtherRoles(t *testing.T) {
	for _, role := range []string{RoleUser, RoleAgent, RoleAdmin, RoleSupport} {
		v := NewVerifier(&mockRepo{principal: &Principal{Role: role}}, nil)
		decision := v.Verify(context.Background(), "p-1")
		assert.False(t, decision.Authorized, "role %s must be denied", role)
		assert.NotEmpty(t, decision.Reason)
	}
}

func TestVerifyMissingRecord(t *testing.T) {
	v := NewVerifier(&mockRepo{roleErr: shared.ErrNotFound}, nil)

	decision := v.Verify(context.Background(), "p-404")
	assert.False(t, decision.Authorized)
	assert.NotEmpty(t, decision.Reason)
}

func TestVerifyLookupErrorDoesNotPanicOrThrow(t *testing.T) {
	v := NewVerifier(&mockRepo{roleErr: errors.New("timeout")}, nil)

	decision := v.Verify(context.Background(), "p-1")
	assert.False(t, decision.Authorized)
	assert.NotEmpty(t, decision.Reason)
}

func TestVerifyEmptyPrincipal(t *testing.T) {
	v := NewVerifier(&mockRepo{}, nil)

	decision := v.Verify(context.Background(), "")
	assert.False(t, decision.Authorized)
}
