package companies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendezap/atendezap-admin/internal/platform/httpx"
	"github.com/atendezap/atendezap-admin/internal/shared"
	_ "github.com/atendezap/atendezap-admin/testing"
)

type mockRepository struct {
	companies map[string]*Company
	setErr    error
}

func newMockRepository() *mockRepository {
	return &mockRepository{companies: make(map[string]*Company)}
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]Company, int, error) {
	var out []Company
	for _, c := range m.companies {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (m *mockRepository) Get(ctx context.Context, id string) (*Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *mockRepository) SetStatus(ctx context.Context, id, status string) error {
	if m.setErr != nil {
		return m.setErr
	}
	c, ok := m.companies[id]
	if !ok {
		return shared.ErrNotFound
	}
	c.Status = status
	return nil
}

func TestSuspendActiveCompany(t *testing.T) {
	repo := newMockRepository()
	repo.companies["c-1"] = &Company{ID: "c-1", Name: "Acme Ltda", Status: StatusActive}
	svc := NewService(repo, nil)

	require.NoError(t, svc.Suspend(context.Background(), "c-1"))
	assert.Equal(t, StatusSuspended, repo.companies["c-1"].Status)
}

func TestSuspendAlreadySuspended(t *testing.T) {
	repo := newMockRepository()
	repo.companies["c-1"] = &Company{ID: "c-1", Name: "Acme Ltda", Status: StatusSuspended}
	svc := NewService(repo, nil)

	err := svc.Suspend(context.Background(), "c-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrValidation)
	assert.Contains(t, err.Error(), "já está suspensa")
}

func TestSuspendMissingCompany(t *testing.T) {
	svc := NewService(newMockRepository(), nil)

	err := svc.Suspend(context.Background(), "ghost")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestReactivateSuspendedCompany(t *testing.T) {
	repo := newMockRepository()
	repo.companies["c-1"] = &Company{ID: "c-1", Name: "Acme Ltda", Status: StatusSuspended}
	svc := NewService(repo, nil)

	require.NoError(t, svc.Reactivate(context.Background(), "c-1"))
	assert.Equal(t, StatusActive, repo.companies["c-1"].Status)
}

func TestReactivateNonSuspendedCompany(t *testing.T) {
	repo := newMockRepository()
	repo.companies["c-1"] = &Company{ID: "c-1", Name: "Acme Ltda", Status: StatusTrial}
	svc := NewService(repo, nil)

	err := svc.Reactivate(context.Background(), "c-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrValidation)
	assert.Contains(t, err.Error(), "não está suspensa")
}

func TestListFiltersByStatus(t *testing.T) {
	repo := newMockRepository()
	repo.companies["c-1"] = &Company{ID: "c-1", Status: StatusActive}
	repo.companies["c-2"] = &Company{ID: "c-2", Status: StatusSuspended}
	svc := NewService(repo, nil)

	list, total, err := svc.List(context.Background(), ListFilter{Status: StatusSuspended})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "c-2", list[0].ID)
}
