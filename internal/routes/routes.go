package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/BradenHooton/gridboard/internal/auth"
	"github.com/BradenHooton/gridboard/internal/handlers"
	"github.com/BradenHooton/gridboard/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by RegisterRoutes
type Handlers struct {
	Users     *handlers.UserHandler
	Roles     *handlers.RoleHandler
	Products  *handlers.ProductHandler
	Dashboard *handlers.DashboardHandler
	Settings  *handlers.SettingsHandler
	Tables    *handlers.TableHandler
	Session   *handlers.SessionHandler
}

// Options controls session enforcement and request budgets
type Options struct {
	SessionRequired bool
	APIRateLimit    middleware.RateLimitConfig
	SignInRateLimit middleware.RateLimitConfig
}

// RegisterRoutes registers all application routes
func RegisterRoutes(router chi.Router, h Handlers, sessions *auth.SessionStore, opts Options) {
	// Public routes - no session required
	router.Route("/session", func(r chi.Router) {
		r.Get("/", h.Session.Current)
		r.Delete("/", h.Session.SignOut)
		r.With(middleware.RateLimitByIP(opts.SignInRateLimit)).Post("/", h.Session.SignIn)
	})

	// Session routes
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(sessions, opts.SessionRequired))
		r.Use(middleware.RateLimitBySession(opts.APIRateLimit))

		// Editors and admins only
		mutate := auth.RequireLevel(auth.LevelEditor)

		h.Users.RegisterRoutes(r, mutate)
		h.Roles.RegisterRoutes(r, mutate)
		h.Products.RegisterRoutes(r, mutate)
		h.Settings.RegisterRoutes(r)
		h.Tables.RegisterRoutes(r)

		r.Get("/permissions", h.Dashboard.Permissions)
		r.Get("/dashboard/stats", h.Dashboard.Stats)
	})
}
