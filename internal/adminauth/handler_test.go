package adminauth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/atendezap/atendezap-admin/internal/adminauth"
	"github.com/atendezap/atendezap-admin/internal/identity"
	"github.com/atendezap/atendezap-admin/internal/shared"
	_ "github.com/atendezap/atendezap-admin/testing"
)

type stubRepo struct {
	principal *identity.Principal
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*identity.Principal, error) {
	if s.principal == nil || !strings.EqualFold(s.principal.Email, email) {
		return nil, shared.ErrNotFound
	}
	return s.principal, nil
}

func (s *stubRepo) GetRole(ctx context.Context, principalID string) (string, error) {
	if s.principal == nil || s.principal.ID != principalID {
		return "", shared.ErrNotFound
	}
	return s.principal.Role, nil
}

func newTestHandler(t *testing.T, repo identity.Repository) *adminauth.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := adminauth.NewStore(client, adminauth.DefaultTTL)
	gate := adminauth.NewGate(store, identity.NewService(repo), identity.NewVerifier(repo, nil), nil)
	executor := adminauth.NewExecutor(adminauth.NewRedisNotifier(client, nil), nil, nil)
	actors := adminauth.NewActorRegistry(client, adminauth.DefaultTTL)
	return adminauth.NewHandler(nil, gate, executor, actors)
}

func superAdminRepo(t *testing.T) *stubRepo {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("correctpass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &stubRepo{principal: &identity.Principal{
		ID:           "p-1",
		Email:        "root@atendezap.com",
		Role:         identity.RoleSuperAdmin,
		PasswordHash: string(hashed),
		IsActive:     true,
	}}
}

func doRequest(t *testing.T, h http.Handler, method, target, sid, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req = req.WithContext(shared.ContextWithConsoleSession(req.Context(), sid))
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res
}

func mountHandler(h *adminauth.Handler) http.Handler {
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func TestLoginEndpointSuccess(t *testing.T) {
	h := mountHandler(newTestHandler(t, superAdminRepo(t)))

	res := doRequest(t, h, http.MethodPost, "/login", "sid-1", `{"email":"root@atendezap.com","password":"correctpass"}`)
	require.Equal(t, http.StatusOK, res.Code)

	var payload struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Empty(t, payload.Error)

	res = doRequest(t, h, http.MethodGet, "/session", "sid-1", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"state":"unlocked"`)
}

func TestLoginEndpointDeniedRole(t *testing.T) {
	repo := superAdminRepo(t)
	repo.principal.Role = identity.RoleSupport
	h := mountHandler(newTestHandler(t, repo))

	res := doRequest(t, h, http.MethodPost, "/login", "sid-1", `{"email":"root@atendezap.com","password":"correctpass"}`)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "Acesso negado")

	res = doRequest(t, h, http.MethodGet, "/session", "sid-1", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"state":"locked"`)
}

func TestLoginEndpointWrongPassword(t *testing.T) {
	h := mountHandler(newTestHandler(t, superAdminRepo(t)))

	res := doRequest(t, h, http.MethodPost, "/login", "sid-1", `{"email":"root@atendezap.com","password":"wrongpass"}`)
	require.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), "Email ou senha inválidos")
}

func TestLoginEndpointInvalidPayload(t *testing.T) {
	h := mountHandler(newTestHandler(t, superAdminRepo(t)))

	res := doRequest(t, h, http.MethodPost, "/login", "sid-1", `{"email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	h := mountHandler(newTestHandler(t, superAdminRepo(t)))

	res := doRequest(t, h, http.MethodPost, "/login", "sid-1", `{"email":"root@atendezap.com","password":"correctpass"}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = doRequest(t, h, http.MethodPost, "/logout", "sid-1", "")
	require.Equal(t, http.StatusNoContent, res.Code)

	res = doRequest(t, h, http.MethodGet, "/session", "sid-1", "")
	assert.Contains(t, res.Body.String(), `"state":"locked"`)

	// Logout is idempotent.
	res = doRequest(t, h, http.MethodPost, "/logout", "sid-1", "")
	require.Equal(t, http.StatusNoContent, res.Code)
}

func TestRequireElevatedMiddleware(t *testing.T) {
	handler := newTestHandler(t, superAdminRepo(t))
	mux := mountHandler(handler)

	var sawActor string
	protected := handler.RequireElevated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawActor = shared.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// Locked gate: 401 with empty detail, the signal to show the login surface.
	res := doRequest(t, protected, http.MethodGet, "/admin/companies", "sid-1", "")
	require.Equal(t, http.StatusUnauthorized, res.Code)

	res = doRequest(t, mux, http.MethodPost, "/login", "sid-1", `{"email":"root@atendezap.com","password":"correctpass"}`)
	require.Equal(t, http.StatusOK, res.Code)

	res = doRequest(t, protected, http.MethodGet, "/admin/companies", "sid-1", "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "p-1", sawActor)
}
