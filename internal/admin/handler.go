package admin

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/egxsim/egxsim/internal/identity"
	"github.com/egxsim/egxsim/internal/middleware"
)

// Handler exposes the admin account-management endpoints.
type Handler struct {
	svc *Service
}

// NewHandler constructs an admin HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createAdminRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	KYCStatus string  `json:"kycStatus"`
	Balance   float64 `json:"balance"`
}

// CreateAdmin provisions a new admin account. Superadmin only.
func (h *Handler) CreateAdmin(c *fiber.Ctx) error {
	actor, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Not authenticated")
	}

	var req createAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	created, err := h.svc.CreateAdmin(c.UserContext(), actor, CreateAdminInput{
		Email:     req.Email,
		Password:  req.Password,
		KYCStatus: identity.KYCStatus(req.KYCStatus),
		Balance:   req.Balance,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// List returns the accounts visible to the requester.
func (h *Handler) List(c *fiber.Ctx) error {
	actor, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Not authenticated")
	}

	users, err := h.svc.List(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(users),
		"data":    users,
	})
}

// GetByID returns a single account, policy permitting.
func (h *Handler) GetByID(c *fiber.Ctx) error {
	actor, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Not authenticated")
	}

	user, err := h.svc.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": user})
}

type updateUserRequest struct {
	Email     *string  `json:"email"`
	Role      *string  `json:"role"`
	KYCStatus *string  `json:"kycStatus"`
	Balance   *float64 `json:"balance"`
	IsDemo    *bool    `json:"isDemo"`
	Password  *string  `json:"password"`
}

// Update applies a partial patch to an account, policy permitting.
func (h *Handler) Update(c *fiber.Ctx) error {
	actor, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Not authenticated")
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	in := UpdateInput{
		Email:    req.Email,
		Balance:  req.Balance,
		IsDemo:   req.IsDemo,
		Password: req.Password,
	}
	if req.Role != nil {
		role := identity.Role(*req.Role)
		in.Role = &role
	}
	if req.KYCStatus != nil {
		status := identity.KYCStatus(*req.KYCStatus)
		in.KYCStatus = &status
	}

	updated, err := h.svc.Update(c.UserContext(), actor, c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": updated})
}

// Delete removes an account, policy permitting.
func (h *Handler) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "Not authenticated")
	}

	if err := h.svc.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "message": "User deleted successfully"})
}
