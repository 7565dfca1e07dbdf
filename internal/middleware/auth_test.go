package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/egxsim/egxsim/internal/auth"
	"github.com/egxsim/egxsim/internal/identity"
	"github.com/egxsim/egxsim/internal/middleware"
)

func setupAuthApp(t *testing.T) (*fiber.App, *auth.TokenService, identity.User, identity.Repository) {
	t.Helper()
	repo := identity.NewMemoryRepository()
	ids := identity.NewService(repo)
	user, err := ids.Register(context.Background(), identity.RegisterInput{Email: "u@x.com", Password: "password123"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tokens := auth.NewTokenService("test-secret", time.Hour)
	app := fiber.New()
	app.Get("/private", middleware.RequireAuth(tokens, repo), func(c *fiber.Ctx) error {
		authed, ok := middleware.UserFromCtx(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"id": authed.ID, "role": authed.Role})
	})
	return app, tokens, user, repo
}

func TestRequireAuthBearerHeader(t *testing.T) {
	app, tokens, user, _ := setupAuthApp(t)

	token, _, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireAuthCookieFallback(t *testing.T) {
	app, tokens, user, _ := setupAuthApp(t)

	token, _, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookie, Value: token})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireAuthRejectsMissingAndBadTokens(t *testing.T) {
	app, _, _, _ := setupAuthApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	app, tokens, user, repo := setupAuthApp(t)

	token, _, err := tokens.Issue(user.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := repo.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/private", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("deleted user: expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireRole(t *testing.T) {
	repo := identity.NewMemoryRepository()
	ids := identity.NewService(repo)
	admin, err := ids.Create(context.Background(), identity.CreateInput{
		Email: "a@x.com", Password: "password123",
		Role: identity.RoleAdmin, KYCStatus: identity.KYCVerified,
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	user, err := ids.Register(context.Background(), identity.RegisterInput{Email: "u@x.com", Password: "password123"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	tokens := auth.NewTokenService("test-secret", time.Hour)
	app := fiber.New()
	app.Get("/admin-only",
		middleware.RequireAuth(tokens, repo),
		middleware.RequireRole(identity.RoleAdmin, identity.RoleSuperadmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for _, tc := range []struct {
		id   string
		want int
	}{
		{admin.ID, fiber.StatusOK},
		{user.ID, fiber.StatusForbidden},
	} {
		token, _, err := tokens.Issue(tc.id)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		req := httptest.NewRequest(fiber.MethodGet, "/admin-only", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != tc.want {
			t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
		}
	}
}
