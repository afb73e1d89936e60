package plans

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atendezap/atendezap-admin/internal/adminauth"
	"github.com/atendezap/atendezap-admin/internal/platform/httpx"
	"github.com/atendezap/atendezap-admin/internal/shared"
)

// Handler wires HTTP endpoints for the plan catalog.
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

// MountRoutes registers plan routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Post("/", h.handleCreate)
	r.Put("/{id}", h.handleUpdate)
	r.Post("/{id}/deactivate", h.handleDeactivate)
}

type planDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DisplayName    string    `json:"display_name"`
	PriceCents     int64     `json:"price_cents"`
	MaxUsers       int       `json:"max_users"`
	MaxConnections int       `json:"max_connections"`
	Features       []string  `json:"features"`
	IsActive       bool      `json:"is_active"`
	CompanyCount   int       `json:"company_count"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDTO(p Plan) planDTO {
	return planDTO{
		ID:             p.ID,
		Name:           p.Name,
		DisplayName:    p.DisplayName,
		PriceCents:     p.PriceCents,
		MaxUsers:       p.MaxUsers,
		MaxConnections: p.MaxConnections,
		Features:       p.Features,
		IsActive:       p.IsActive,
		CompanyCount:   p.CompanyCount,
		CreatedAt:      p.CreatedAt,
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
	plans, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list plans", slog.Any("error", err))
		respondError(w, err)
		return
	}
	out := make([]planDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, toDTO(p))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"plans": out})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.logger.Error("get plan", slog.Any("error", err))
		}
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDTO(*plan))
}

func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request) (PlanInput, bool) {
	var input PlanInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "corpo da requisição inválido")
		return input, false
	}
	if err := h.validator.Struct(input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "dados do plano inválidos")
		return input, false
	}
	return input, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	outcome := h.executor.Run(r.Context(), func(ctx context.Context) (any, error) {
		return h.service.Create(ctx, input)
	}, adminauth.Options{
		SuccessMessage: "Plano criado com sucesso",
		ErrorMessage:   "Erro ao criar plano",
	})
	if !outcome.Succeeded {
		respondError(w, outcome.Err)
		return
	}
	plan := outcome.Value.(*Plan)
	httpx.JSON(w, http.StatusCreated, toDTO(*plan))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	outcome := h.executor.Run(r.Context(), func(ctx context.Context) (any, error) {
		return nil, h.service.Update(ctx, id, input)
	}, adminauth.Options{
		SuccessMessage: "Plano atualizado com sucesso",
		ErrorMessage:   "Erro ao atualizar plano",
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
		SuccessMessage: "Plano desativado com sucesso",
		ErrorMessage:   "Erro ao desativar plano",
	})
	if !outcome.Succeeded {
		respondError(w, outcome.Err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
