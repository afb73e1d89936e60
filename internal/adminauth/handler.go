package adminauth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atendezap/atendezap-admin/internal/platform/httpx"
	"github.com/atendezap/atendezap-admin/internal/shared"
)

// Handler wires HTTP endpoints for the privileged-session gate.
type Handler struct {
	logger    *slog.Logger
	gate      *Gate
	executor  *Executor
	actors    *ActorRegistry
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, gate *Gate, executor *Executor, actors *ActorRegistry) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		gate:      gate,
		executor:  executor,
		actors:    actors,
		validator: validator.New(),
	}
}

// MountRoutes registers gate routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/session", h.handleSession)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type sessionResponse struct {
	State string `json:"state"`
	Busy  bool   `json:"busy"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	sid := shared.ConsoleSessionFromContext(r.Context())
	if sid == "" {
		h.logger.Error("console session missing during login")
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "corpo da requisição inválido")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.JSON(w, http.StatusBadRequest, loginResponse{Error: "Email e senha são obrigatórios"})
		return
	}

	result := h.gate.Login(r.Context(), sid, req.Email, req.Password)
	if !result.Success {
		httpx.JSON(w, http.StatusUnauthorized, loginResponse{Error: result.Error})
		return
	}

	if err := h.actors.Set(r.Context(), sid, result.PrincipalID); err != nil {
		h.logger.Warn("register console actor", slog.Any("error", err))
	}
	httpx.JSON(w, http.StatusOK, loginResponse{Success: true})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sid := shared.ConsoleSessionFromContext(r.Context())
	if err := h.gate.Logout(r.Context(), sid); err != nil {
		h.logger.Warn("clear elevated session", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	if err := h.actors.Clear(r.Context(), sid); err != nil {
		h.logger.Warn("clear console actor", slog.Any("error", err))
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	sid := shared.ConsoleSessionFromContext(r.Context())
	state, err := h.gate.Resolve(r.Context(), sid)
	if err != nil {
		h.logger.Error("resolve gate state", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, sessionResponse{State: state.String(), Busy: h.executor.Busy()})
}

// RequireElevated guards protected routes: a locked gate yields 401
// with no detail, which the console treats as "show the login surface"
// rather than an error. The acting principal, when known, is placed on
// the request context for audit trails.
func (h *Handler) RequireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sid := shared.ConsoleSessionFromContext(ctx)
		state, err := h.gate.Resolve(ctx, sid)
		if err != nil {
			h.logger.Error("resolve gate state", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		if state != StateUnlocked {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
		if actor, err := h.actors.Get(ctx, sid); err == nil && actor != "" {
			ctx = shared.ContextWithActor(ctx, actor)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
