package auth

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/egxsim/egxsim/internal/identity"
	"github.com/egxsim/egxsim/internal/middleware"
)

// Handler exposes the public registration/login endpoints and the
// authenticated profile endpoints.
type Handler struct {
	ids          *identity.Service
	tokens       *TokenService
	secureCookie bool
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(ids *identity.Service, tokens *TokenService, secureCookie bool) *Handler {
	return &Handler{ids: ids, tokens: tokens, secureCookie: secureCookie}
}

type registerRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	IsDemo    bool   `json:"isDemo"`
}

// Register creates a new account and issues a session token. Self-assigning
// an elevated role is rejected; admin accounts are created through the
// superadmin-only endpoint instead.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || (req.Password == "" && !req.IsDemo) {
		return fiber.NewError(http.StatusBadRequest, "Please provide all required fields")
	}
	if req.Role != "" && req.Role != string(identity.RoleUser) {
		return fiber.NewError(http.StatusBadRequest, "Cannot self-assign an elevated role")
	}

	user, err := h.ids.Register(c.UserContext(), identity.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		IsDemo:    req.IsDemo,
	})
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.Issue(user.ID)
	if err != nil {
		return err
	}
	h.setTokenCookie(c, token, exp)

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    user.Public(),
		"token":   token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a session token. All credential
// failures produce the same 401 response.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "Please provide both email and password")
	}

	user, err := h.ids.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.Issue(user.ID)
	if err != nil {
		return err
	}
	h.setTokenCookie(c, token, exp)

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    user.Public(),
		"token":   token,
	})
}

// GetProfile returns the authenticated user's own record.
func (h *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": user.Public()})
}

type profileUpdateRequest struct {
	Email     *string  `json:"email"`
	KYCStatus *string  `json:"kycStatus"`
	Balance   *float64 `json:"balance"`
	IsDemo    *bool    `json:"isDemo"`
	Password  *string  `json:"password"`
}

// UpdateProfile applies a partial patch to the caller's own record. Omitted
// fields keep their previous values; role is never changeable here.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Not authenticated")
	}

	var req profileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	patch := identity.ProfilePatch{
		Email:    req.Email,
		Balance:  req.Balance,
		IsDemo:   req.IsDemo,
		Password: req.Password,
	}
	if req.KYCStatus != nil {
		status := identity.KYCStatus(*req.KYCStatus)
		patch.KYCStatus = &status
	}

	updated, err := h.ids.UpdateProfile(c.UserContext(), user.ID, patch)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": updated.Public()})
}

func (h *Handler) setTokenCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
