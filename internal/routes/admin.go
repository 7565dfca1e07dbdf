package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/egxsim/egxsim/internal/admin"
	"github.com/egxsim/egxsim/internal/identity"
	"github.com/egxsim/egxsim/internal/middleware"
)

// RegisterAdminRoutes wires account management endpoints. Coarse role gating
// happens here; the fine-grained rules live in the policy package and are
// enforced by the admin service.
func RegisterAdminRoutes(r fiber.Router, h *admin.Handler, requireAuth fiber.Handler) {
	group := r.Group("/admin", requireAuth, middleware.RequireRole(identity.RoleAdmin, identity.RoleSuperadmin))

	group.Post("/create-admin", middleware.RequireRole(identity.RoleSuperadmin), h.CreateAdmin)
	group.Get("/", h.List)
	group.Get("/:id", h.GetByID)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}
