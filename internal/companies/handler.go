package companies

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atendezap/atendezap-admin/internal/adminauth"
	"github.com/atendezap/atendezap-admin/internal/platform/httpx"
	"github.com/atendezap/atendezap-admin/internal/shared"
)

func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, shared.ErrNotFound) {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	httpx.RespondError(w, err)
}

// Handler wires HTTP endpoints for company management.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	executor *adminauth.Executor
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, executor *adminauth.Executor) *Handler {
	return &Handler{logger: logger, service: service, executor: executor}
}

// MountRoutes registers company routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Post("/{id}/suspend", h.handleSuspend)
	r.Post("/{id}/reactivate", h.handleReactivate)
}

type companyDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Document        string    `json:"document"`
	PlanID          string    `json:"plan_id"`
	Status          string    `json:"status"`
	UserCount       int       `json:"user_count"`
	ConnectionCount int       `json:"connection_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type listResponse struct {
	Companies []companyDTO `json:"companies"`
	Total     int          `json:"total"`
}

func toDTO(c Company) companyDTO {
	return companyDTO{
		ID:              c.ID,
		Name:            c.Name,
		Document:        c.Document,
		PlanID:          c.PlanID,
		Status:          c.Status,
		UserCount:       c.UserCount,
		ConnectionCount: c.ConnectionCount,
		CreatedAt:       c.CreatedAt,
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	filter := ListFilter{
		Status: q.Get("status"),
		PlanID: q.Get("plan_id"),
		Search: q.Get("q"),
		Limit:  limit,
		Offset: offset,
	}

	companies, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list companies", slog.Any("error", err))
		respondError(w, err)
		return
	}
	out := listResponse{Companies: make([]companyDTO, 0, len(companies)), Total: total}
	for _, c := range companies {
		out.Companies = append(out.Companies, toDTO(c))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	company, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.logger.Error("get company", slog.Any("error", err))
		}
		respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDTO(*company))
}

func (h *Handler) handleSuspend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	outcome := h.executor.Run(r.Context(), func(ctx context.Context) (any, error) {
		return nil, h.service.Suspend(ctx, id)
	}, adminauth.Options{
		SuccessMessage: "Empresa suspensa com sucesso",
		ErrorMessage:   "Erro ao suspender empresa",
	})
	if !outcome.Succeeded {
		respondError(w, outcome.Err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	outcome := h.executor.Run(r.Context(), func(ctx context.Context) (any, error) {
		return nil, h.service.Reactivate(ctx, id)
	}, adminauth.Options{
		SuccessMessage: "Empresa reativada com sucesso",
		ErrorMessage:   "Erro ao reativar empresa",
	})
	if !outcome.Succeeded {
		respondError(w, outcome.Err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
