package app

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/atendezap/atendezap-admin/internal/adminauth"
	"github.com/atendezap/atendezap-admin/internal/analytics"
	"github.com/atendezap/atendezap-admin/internal/audit"
	"github.com/atendezap/atendezap-admin/internal/companies"
	"github.com/atendezap/atendezap-admin/internal/integrations"
	"github.com/atendezap/atendezap-admin/internal/observability"
	"github.com/atendezap/atendezap-admin/internal/plans"
	"github.com/atendezap/atendezap-admin/internal/queues"
	"github.com/atendezap/atendezap-admin/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AuthHandler         *adminauth.Handler
	CompaniesHandler    *companies.Handler
	UsersHandler        *users.Handler
	PlansHandler        *plans.Handler
	IntegrationsHandler *integrations.Handler
	QueuesHandler       *queues.Handler
	AnalyticsHandler    *analytics.Handler
	AuditHandler        *audit.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with console defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	loginLimit, loginWindow := 5, params.Config.LoginRateWindow
	if params.Config.LoginRateLimit > 0 {
		loginLimit = params.Config.LoginRateLimit
	}
	if loginWindow <= 0 {
		loginWindow = time.Minute
	}
	loginLimiter := httprate.Limit(loginLimit, loginWindow, httprate.WithKeyFuncs(httprate.KeyByIP))

	r.Route("/auth", func(ar chi.Router) {
		ar.Use(chimw.Maybe(loginLimiter, func(r *http.Request) bool {
			return r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/login")
		}))
		params.AuthHandler.MountRoutes(ar)
	})

	r.Route("/admin", func(ad chi.Router) {
		ad.Use(params.AuthHandler.RequireElevated)
		if params.CompaniesHandler != nil {
			ad.Route("/companies", params.CompaniesHandler.MountRoutes)
		}
		if params.UsersHandler != nil {
			ad.Route("/users", params.UsersHandler.MountRoutes)
		}
		if params.PlansHandler != nil {
			ad.Route("/plans", params.PlansHandler.MountRoutes)
		}
		if params.IntegrationsHandler != nil {
			ad.Route("/integrations", params.IntegrationsHandler.MountRoutes)
		}
		if params.QueuesHandler != nil {
			ad.Route("/queues", params.QueuesHandler.MountRoutes)
		}
		if params.AnalyticsHandler != nil {
			ad.Route("/analytics", params.AnalyticsHandler.MountRoutes)
		}
		if params.AuditHandler != nil {
			ad.Route("/audit", params.AuditHandler.MountRoutes)
		}
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
