package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendezap/atendezap-admin/internal/identity"
	"github.com/atendezap/atendezap-admin/internal/shared"
	_ "github.com/atendezap/atendezap-admin/testing"
)

type mockRepository struct {
	users map[string]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*User)}
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]User, int, error) {
	var out []User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockRepository) SetRole(ctx context.Context, id, role string) error {
	u, ok := m.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.Role = role
	return nil
}

func (m *mockRepository) SetActive(ctx context.Context, id string, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (m *mockRepository) CountByRole(ctx context.Context, role string) (int, error) {
	count := 0
	for _, u := range m.users {
		if u.Role == role && u.IsActive {
			count++
		}
	}
	return count, nil
}

func TestChangeRole(t *testing.T) {
	repo := newMockRepository()
	repo.users["u-1"] = &User{ID: "u-1", Role: identity.RoleUser, IsActive: true}
	svc := NewService(repo, nil)

	require.NoError(t, svc.ChangeRole(context.Background(), "u-1", identity.RoleAdmin))
	assert.Equal(t, identity.RoleAdmin, repo.users["u-1"].Role)
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	repo := newMockRepository()
	repo.users["u-1"] = &User{ID: "u-1", Role: identity.RoleUser, IsActive: true}
	svc := NewService(repo, nil)

	err := svc.ChangeRole(context.Background(), "u-1", "root")
	require.Error(t, err)
	assert.Equal(t, identity.RoleUser, repo.users["u-1"].Role)
}

func TestChangeRoleKeepsLastSuperAdmin(t *testing.T) {
	repo := newMockRepository()
	repo.users["u-1"] = &User{ID: "u-1", Role: identity.RoleSuperAdmin, IsActive: true}
	svc := NewService(repo, nil)

	err := svc.ChangeRole(context.Background(), "u-1", identity.RoleAdmin)
	require.Error(t, err)
	assert.Equal(t, identity.RoleSuperAdmin, repo.users["u-1"].Role)
}

func TestChangeRoleAllowsDemotionWithAnotherSuperAdmin(t *testing.T) {
	repo := newMockRepository()
	repo.users["u-1"] = &User{ID: "u-1", Role: identity.RoleSuperAdmin, IsActive: true}
	repo.users["u-2"] = &User{ID: "u-2", Role: identity.RoleSuperAdmin, IsActive: true}
	svc := NewService(repo, nil)

	require.NoError(t, svc.ChangeRole(context.Background(), "u-1", identity.RoleSupport))
	assert.Equal(t, identity.RoleSupport, repo.users["u-1"].Role)
}

func TestDeactivateKeepsLastSuperAdmin(t *testing.T) {
	repo := newMockRepository()
	repo.users["u-1"] = &User{ID: "u-1", Role: identity.RoleSuperAdmin, IsActive: true}
	svc := NewService(repo, nil)

	err := svc.Deactivate(context.Background(), "u-1")
	require.Error(t, err)
	assert.True(t, repo.users["u-1"].IsActive)
}

func TestDeactivateThenActivate(t *testing.T) {
	repo := newMockRepository()
	repo.users["u-1"] = &User{ID: "u-1", Role: identity.RoleAgent, IsActive: true}
	svc := NewService(repo, nil)

	require.NoError(t, svc.Deactivate(context.Background(), "u-1"))
	assert.False(t, repo.users["u-1"].IsActive)

	// Deactivating an inactive account is a no-op.
	require.NoError(t, svc.Deactivate(context.Background(), "u-1"))

	require.NoError(t, svc.Activate(context.Background(), "u-1"))
	assert.True(t, repo.users["u-1"].IsActive)
}
