package queues

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atendezap/atendezap-admin/internal/adminauth"
	"github.com/atendezap/atendezap-admin/internal/platform/httpx"
)

// Handler wires HTTP endpoints for queue monitoring.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	executor *adminauth.Executor
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, executor *adminauth.Executor) *Handler {
	return &Handler{logger: logger, service: service, executor: executor}
}

// MountRoutes registers queue routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/{name}/pause", h.handlePause)
	r.Post("/{name}/resume", h.handleResume)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list queues", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"queues": stats})
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	outcome := h.executor.Run(r.Context(), func(ctx context.Context) (any, error) {
		return nil, h.service.Pause(ctx, name)
	}, adminauth.Options{
		SuccessMessage: "Fila pausada com sucesso",
		ErrorMessage:   "Erro ao pausar fila",
	})
	if !outcome.Succeeded {
		httpx.RespondError(w, outcome.Err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	outcome := h.executor.Run(r.Context(), func(ctx context.Context) (any, error) {
		return nil, h.service.Resume(ctx, name)
	}, adminauth.Options{
		SuccessMessage: "Fila retomada com sucesso",
		ErrorMessage:   "Erro ao retomar fila",
	})
	if !outcome.Succeeded {
		httpx.RespondError(w, outcome.Err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
