package users

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atendezap/atendezap-admin/internal/adminauth"
	"github.com/atendezap/atendezap-admin/internal/platform/httpx"
	"github.com/atendezap/atendezap-admin/internal/shared"
)

// Handler wires HTTP endpoints for user management.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	executor  *adminauth.Executor
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, executor *adminauth.Executor) *Handler {
	return &Handler{logger: logger, service: service, executor: executor, validator: validator.New()}
}

// MountRoutes registers user routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}/role", h.handleChangeRole)
	r.Post("/{id}/deactivate", h.handleDeactivate)
	r.Post("/{id}/activate", h.handleActivate)
}

type userDTO struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type listResponse struct {
	Users []userDTO `json:"users"`
	Total int       `json:"total"`
}

func toDTO(u User) userDTO {
	return userDTO{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		CompanyID:   u.CompanyID,
		CompanyName: u.CompanyName,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	httpx.RespondError(w, err)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	filter := ListFilter{
		CompanyID: q.Get("company_id"),
		Role:      q.Get("role"),
		Search:    q.Get("q"),
		Limit:     limit,
		Offset:    offset,
	}
	if raw := q.Get("active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			filter.Active = &active
		}
	}

	users, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		respondError(w, err)
		return
	}
	out := listResponse{Users: make([]userDTO, 0, len(users)), Total: total}
	for _, u := range users {
		out.Users = append(out.Users, toDTO(u))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.logger.Error("get user", slog.Any("error", err))
		}
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDTO(*user))
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user agent admin support super_admin"`
}

func (h *Handler) handleChangeRole(w http.ResponseWriter, r *http.Request) {
	var req changeRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "corpo da requisição inválido")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "cargo inválido")
		return
	}

	id := chi.URLParam(r, "id")
	outcome := h.executor.Run(r.Context(), func(ctx context.Context) (any, error) {
		return nil, h.service.ChangeRole(ctx, id, req.Role)
	}, adminauth.Options{
		SuccessMessage: "Cargo atualizado com sucesso",
		ErrorMessage:   "Erro ao atualizar cargo",
	})
	if !outcome.Succeeded {
		respondError(w, outcome.Err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	outcome := h.executor.Run(r.Context(), func(ctx context.Context) (any, error) {
		return nil, h.service.Deactivate(ctx, id)
	}, adminauth.Options{
		SuccessMessage: "Usuário desativado com sucesso",
		ErrorMessage:   "Erro ao desativar usuário",
	})
	if !outcome.Succeeded {
		respondError(w, outcome.Err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	outcome := h.executor.Run(r.Context(), func(ctx context.Context) (any, error) {
		return nil, h.service.Activate(ctx, id)
	}, adminauth.Options{
		SuccessMessage: "Usuário reativado com sucesso",
		ErrorMessage:   "Erro ao reativar usuário",
	})
	if !outcome.Succeeded {
		respondError(w, outcome.Err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
