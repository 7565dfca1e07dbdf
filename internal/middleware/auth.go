package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/egxsim/egxsim/internal/identity"
)

// TokenResolver turns a bearer token into the owning user id. Implemented by
// the auth token service.
type TokenResolver interface {
	Resolve(token string) (string, error)
}

const (
	authUserKey = "auth_user"
	// TokenCookie is the http-only cookie carrying the session token.
	TokenCookie = "token"
)

// RequireAuth validates the session token and loads the requesting user
// fresh from the repository, so role demotions apply on the next request
// rather than at token expiry. The Authorization header takes precedence
// over the cookie. Any failure is a plain 401; there is no partially
// authenticated state.
func RequireAuth(tokens TokenResolver, repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			tokenStr = c.Cookies(TokenCookie)
		}
		if tokenStr == "" {
			return fiber.NewError(http.StatusUnauthorized, "Not authorized - no token provided")
		}

		userID, err := tokens.Resolve(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "Invalid or expired token")
		}

		user, err := repo.FindByID(c.UserContext(), userID)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(authUserKey, user)
		return c.Next()
	}
}

// RequireRole rejects authenticated requesters whose role is not in the
// allowed set. Must run after RequireAuth.
func RequireRole(roles ...identity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := UserFromCtx(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "Not authenticated")
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return fiber.NewError(http.StatusForbidden, "Forbidden - insufficient role")
	}
}

// UserFromCtx returns the authenticated user attached by RequireAuth.
func UserFromCtx(c *fiber.Ctx) (identity.User, bool) {
	user, ok := c.Locals(authUserKey).(identity.User)
	return user, ok
}

func bearerToken(c *fiber.Ctx) string {
	authz := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return ""
	}
	return strings.TrimSpace(authz[len("Bearer "):])
}
