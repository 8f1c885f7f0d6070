package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wishlane/wishlane-backend/api/controllers"
	"github.com/wishlane/wishlane-backend/api/middleware"
	"github.com/wishlane/wishlane-backend/internal/auth"
	"github.com/wishlane/wishlane-backend/internal/wishes"
	"github.com/wishlane/wishlane-backend/pkg/auth/session"
	"github.com/wishlane/wishlane-backend/pkg/config"
	"github.com/wishlane/wishlane-backend/pkg/logger"
	"github.com/wishlane/wishlane-backend/pkg/metrics"
)

// Pinger is implemented by backing stores that can answer a health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             Pinger
	Redis          Pinger
	SessionChecker session.AccessSessionChecker
	AuthService    auth.Service
	Register       auth.RegisterService
	WishesService  wishes.Service
	HTTPMetrics    *metrics.HTTPMetrics
	PromRegistry   *prometheus.Registry
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if p.HTTPMetrics != nil {
		r.Use(middleware.Metrics(p.HTTPMetrics))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(p.Register, logg))
		r.Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.Post("/magic-link", controllers.AuthMagicLink(p.AuthService, logg))
		r.Post("/magic-link/verify", controllers.AuthMagicLinkVerify(p.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1/wishes", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))
		r.Get("/", controllers.WishesList(p.WishesService, logg))
		r.Post("/", controllers.WishesCreate(p.WishesService, logg))
		r.Patch("/{wishId}", controllers.WishesUpdate(p.WishesService, logg))
		r.Delete("/{wishId}", controllers.WishesDelete(p.WishesService, logg))
	})

	r.With(middleware.Auth(cfg.JWT, p.SessionChecker, logg)).
		Get("/api/ping", controllers.PrivatePing())

	return r
}
