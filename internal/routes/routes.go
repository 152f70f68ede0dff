// internal/routes/routes.go
package routes

import (
	"time"

	"imgsafe-backend/internal/handlers"
	"imgsafe-backend/internal/middleware"
	"imgsafe-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Token      *handlers.TokenHandler
	Moderation *handlers.ModerationHandler
	Usage      *handlers.UsageHandler
}

type Services struct {
	TokenService services.TokenService
	UsageService services.UsageService
}

func SetupRoutes(h *Handlers, s *Services, tokenSecret string) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger())
	r.Use(middleware.Recoverer())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.Timeout(90 * time.Second))
	r.Use(middleware.CORS())

	// Health check routes
	r.Get("/", h.Health.HealthCheck)
	r.Get("/health", h.Health.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		// Token creation is unauthenticated so a fresh deployment can
		// bootstrap its first admin token.
		r.Post("/auth/tokens", h.Token.CreateToken)

		// Protected routes (authentication + usage tracking)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(s.TokenService, tokenSecret))
			r.Use(middleware.UsageTracker(s.UsageService))

			r.Post("/moderate", h.Moderation.ModerateImage)

			r.Route("/auth", func(r chi.Router) {
				r.Get("/usage/my-usage", h.Usage.GetMyUsage)
				r.Get("/usage/my-usage/stats", h.Usage.GetMyUsageStats)

				// Admin-only token and usage inspection
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly())

					r.Get("/tokens", h.Token.ListTokens)
					r.Get("/tokens/usage-counts", h.Token.GetTokenUsageCounts)
					r.Delete("/tokens/{token}", h.Token.DeleteToken)

					r.Get("/usage/token/{tokenId}", h.Usage.GetUsageByToken)
					r.Get("/usage/endpoint/*", h.Usage.GetUsageByEndpoint)
				})
			})
		})
	})

	return r
}
