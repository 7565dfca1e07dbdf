package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/egxsim/egxsim/internal/admin"
	"github.com/egxsim/egxsim/internal/audit"
	"github.com/egxsim/egxsim/internal/auth"
	"github.com/egxsim/egxsim/internal/config"
	"github.com/egxsim/egxsim/internal/identity"
	"github.com/egxsim/egxsim/internal/middleware"
	"github.com/egxsim/egxsim/internal/stocks"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories fall back to memory implementations in dev without a DB.
	var identityRepo identity.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
	}
	var stockRepo stocks.Repository
	if d.DB != nil {
		stockRepo = stocks.NewPostgresRepository(d.DB)
	} else {
		stockRepo = stocks.NewMemoryRepository()
	}

	// Services and handlers
	identitySvc := identity.NewService(identityRepo)
	tokenSvc := auth.NewTokenService(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	recorder := audit.NewSlogRecorder(d.Logger)
	adminSvc := admin.NewService(identitySvc, identityRepo, recorder)
	stockSvc := stocks.NewService(stockRepo)

	authHandler := auth.NewHandler(identitySvc, tokenSvc, d.Cfg.IsProduction())
	adminHandler := admin.NewHandler(adminSvc)
	stockHandler := stocks.NewHandler(stockSvc)

	// API routes
	api := app.Group("/api")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	requireAuth := middleware.RequireAuth(tokenSvc, identityRepo)
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginPerMin)

	RegisterUserRoutes(api, authHandler, requireAuth, rateLimiter)
	RegisterAdminRoutes(api, adminHandler, requireAuth)
	RegisterStockRoutes(api, stockHandler, requireAuth)

	return nil
}
