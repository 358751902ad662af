package api

import (
	"io/fs"
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/slidery/slidery/internal/api/handlers"
	"github.com/slidery/slidery/internal/api/middleware"
	"github.com/slidery/slidery/internal/config"
	"github.com/slidery/slidery/internal/db"
	"github.com/slidery/slidery/internal/game"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Dependencies bundles everything the router needs.
type Dependencies struct {
	DB       *db.DB
	Registry *game.Registry
	Hub      *game.EventHub
	Sessions *middleware.SessionStore
	Config   *config.Config
	StaticFS fs.FS
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	// Middleware stack (order matters)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.CORS)

	limiter := middleware.NewRateLimiter(config.RateLimitPerSecond, config.RateLimitBurst)

	slog.Info("router initialized",
		"middleware", []string{"realIP", "recoverer", "requestLogging", "cors", "rateLimit"},
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthHandler(deps.Config, deps.Registry, Version))
		r.Get("/events", handlers.EventStream(deps.Hub, deps.Registry))

		r.Get("/leaderboard", handlers.Leaderboard(deps.DB, deps.Config))
		r.Get("/solves/recent", handlers.RecentSolves(deps.DB, deps.Config))

		r.Get("/games/{id}", handlers.GetGame(deps.Registry))

		// Mutating game routes are rate limited per client IP.
		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware)

			r.Post("/games", handlers.CreateGame(deps.Registry, deps.Config))
			r.Post("/games/{id}/moves", handlers.ApplyMove(deps.Registry))
			r.Post("/games/{id}/restart", handlers.RestartGame(deps.Registry))
			r.Delete("/games/{id}", handlers.DeleteGame(deps.Registry))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", handlers.Login(deps.Sessions))

			r.Group(func(r chi.Router) {
				r.Use(deps.Sessions.Middleware)

				r.Post("/logout", handlers.Logout(deps.Sessions))
				r.Get("/settings", handlers.GetSettings(deps.DB))
				r.Put("/settings", handlers.UpdateSettings(deps.DB))
				r.Delete("/solves", handlers.ClearSolves(deps.DB))
			})
		})
	})

	// Embedded frontend with SPA fallback for everything else.
	if deps.StaticFS != nil {
		r.NotFound(handlers.SPAHandler(deps.StaticFS))
	}

	return r
}
