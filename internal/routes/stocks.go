package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/egxsim/egxsim/internal/identity"
	"github.com/egxsim/egxsim/internal/middleware"
	"github.com/egxsim/egxsim/internal/stocks"
)

// RegisterStockRoutes wires the catalog endpoints. Reads are public, writes
// require admin rank, deletion requires superadmin.
func RegisterStockRoutes(r fiber.Router, h *stocks.Handler, requireAuth fiber.Handler) {
	adminOnly := middleware.RequireRole(identity.RoleAdmin, identity.RoleSuperadmin)
	superadminOnly := middleware.RequireRole(identity.RoleSuperadmin)

	group := r.Group("/stocks")
	group.Get("/", h.List)
	group.Post("/", requireAuth, adminOnly, h.Create)
	group.Patch("/prices", requireAuth, adminOnly, h.BulkUpdatePrices)
	group.Get("/:symbol", h.GetBySymbol)
	group.Put("/:symbol", requireAuth, adminOnly, h.Update)
	group.Delete("/:symbol", requireAuth, superadminOnly, h.Delete)
}
