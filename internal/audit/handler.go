package audit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/atendezap/atendezap-admin/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the audit trail.
type Handler struct {
	logger *slog.Logger
	repo   RepositoryPort
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, repo RepositoryPort) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// MountRoutes registers audit routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	entries, total, err := h.repo.List(r.Context(), Filter{
		ActorID: r.URL.Query().Get("actor_id"),
		Entity:  r.URL.Query().Get("entity"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		h.logger.Error("list audit entries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   total,
	})
}
