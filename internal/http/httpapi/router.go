package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"elix-server/internal/http/handlers"
	"elix-server/internal/infra"
	"elix-server/internal/middleware"
)

// NewRouter wires the public surface. Everything quota-bearing sits behind
// the session JWT; the persona catalog and health probe stay open.
func NewRouter(app *handlers.App, cfg *infra.Config, country middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.Geo(country),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/personas", app.Personas)
	r.Post("/v1/auth/google", app.AuthGoogleVerify)
	r.Get("/v1/billing/config", app.BillingConfig)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(app.JWTSecret))
		r.Get("/v1/me", app.Me)
		r.Get("/v1/me/limits", app.MeLimits)
		r.Post("/v1/rewrite", app.Rewrite)
		r.Post("/v1/billing/confirm", app.BillingConfirm)
	})

	return r
}
