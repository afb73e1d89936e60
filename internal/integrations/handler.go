package integrations

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atendezap/atendezap-admin/internal/adminauth"
	"github.com/atendezap/atendezap-admin/internal/platform/httpx"
	"github.com/atendezap/atendezap-admin/internal/shared"
)

// Handler wires HTTP endpoints for integration management.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	executor *adminauth.Executor
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, executor *adminauth.Executor) *Handler {
	return &Handler{logger: logger, service: service, executor: executor}
}

// MountRoutes registers integration routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/whatsapp/connections", h.handleListConnections)
	r.Get("/whatsapp/config", h.handleConfig)
	r.Post("/whatsapp/sync", h.handleSync)
}

type connectionDTO struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	CompanyName string     `json:"company_name"`
	Name        string     `json:"name"`
	Number      string     `json:"number"`
	Status      string     `json:"status"`
	Active      bool       `json:"active"`
	LastPing    *time.Time `json:"last_ping,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type configDTO struct {
	InstanceName    string     `json:"instance_name"`
	WebhookURL      string     `json:"webhook_url,omitempty"`
	Active          bool       `json:"active"`
	Status          string     `json:"status,omitempty"`
	LastConnectedAt *time.Time `json:"last_connected_at,omitempty"`
}

func (h *Handler) handleListConnections(w http.ResponseWriter, r *http.Request) {
	connections, err := h.service.ListConnections(r.Context(), r.URL.Query().Get("company_id"))
	if err != nil {
		h.logger.Error("list whatsapp connections", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]connectionDTO, 0, len(connections))
	for _, c := range connections {
		out = append(out, connectionDTO{
			ID:          c.ID,
			CompanyID:   c.CompanyID,
			CompanyName: c.CompanyName,
			Name:        c.Name,
			Number:      c.Number,
			Status:      c.Status,
			Active:      c.Active,
			LastPing:    c.LastPing,
			CreatedAt:   c.CreatedAt,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"connections": out})
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.ActiveConfig(r.Context())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.RespondError(w, httpx.ErrNotFound)
			return
		}
		h.logger.Error("get gateway config", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, configDTO{
		InstanceName:    cfg.InstanceName,
		WebhookURL:      cfg.WebhookURL,
		Active:          cfg.Active,
		Status:          cfg.Status,
		LastConnectedAt: cfg.LastConnectedAt,
	})
}

func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	outcome := h.executor.Run(r.Context(), func(ctx context.Context) (any, error) {
		return nil, h.service.RequestSync(ctx)
	}, adminauth.Options{
		SuccessMessage: "Sincronização de conexões iniciada",
		ErrorMessage:   "Erro ao sincronizar conexões",
	})
	if !outcome.Succeeded {
		httpx.RespondError(w, outcome.Err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]any{"status": "queued"})
}
