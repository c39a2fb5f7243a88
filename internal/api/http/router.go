package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tour-service/internal/api/http/handlers"
	"github.com/spec-kit/tour-service/internal/auth"
	"github.com/spec-kit/tour-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tours          *handlers.ToursHandler
	Reviews        *handlers.ReviewsHandler
	AuthMiddleware *auth.Middleware
	RateLimiter    fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter)
	}

	protect := cfg.AuthMiddleware.Handle

	tours := api.Group("/tours")
	tours.Get("/top-5-cheap", cfg.Tours.TopCheap)
	tours.Get("/tour-stats", cfg.Tours.Stats)
	tours.Get("/monthly-plan/:year", cfg.Tours.MonthlyPlan)
	tours.Get("/", protect, cfg.Tours.List)
	tours.Post("/", cfg.Tours.Create)
	tours.Get("/:id", cfg.Tours.Get)
	tours.Put("/:id", cfg.Tours.Update)
	tours.Delete("/:id", protect,
		auth.RequireRoles(domain.RoleAdmin, domain.RoleLeadGuide), cfg.Tours.Delete)

	users := api.Group("/users")
	users.Post("/signup", cfg.Users.Signup)
	users.Post("/login", cfg.Users.Login)
	users.Post("/forgot-password", cfg.Users.ForgotPassword)
	users.Patch("/resetPassword/:token", cfg.Users.ResetPassword)
	users.Patch("/updateMypassword", protect, cfg.Users.UpdateMyPassword)
	users.Patch("/updateMe", protect, cfg.Users.UpdateMe)
	users.Delete("/deleteMe", protect, cfg.Users.DeleteMe)
	users.Get("/", cfg.Users.List)

	reviews := api.Group("/reviews")
	reviews.Get("/", cfg.Reviews.List)
	reviews.Post("/", cfg.Reviews.Create)
}
