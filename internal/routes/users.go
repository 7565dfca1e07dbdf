package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/egxsim/egxsim/internal/auth"
)

// RegisterUserRoutes wires the public registration/login endpoints and the
// authenticated profile endpoints.
func RegisterUserRoutes(r fiber.Router, h *auth.Handler, requireAuth, rateLimiter fiber.Handler) {
	group := r.Group("/users")
	group.Post("/register", h.Register)
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}

	profile := group.Group("/profile", requireAuth)
	profile.Get("/", h.GetProfile)
	profile.Put("/", h.UpdateProfile)
}
