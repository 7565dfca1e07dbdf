package stocks

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the stock catalog endpoints.
type Handler struct {
	svc *Service
}

// NewHandler constructs a stock HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns catalog entries matching the query filters.
func (h *Handler) List(c *fiber.Ctx) error {
	filter := Filter{
		Symbol:   c.Query("symbol"),
		Exchange: c.Query("exchange"),
		Sector:   c.Query("sector"),
		SortBy:   c.Query("sortBy"),
	}
	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "limit must be a number")
		}
		filter.Limit = limit
	}

	list, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(list),
		"data":    list,
	})
}

// GetBySymbol returns a single listing.
func (h *Handler) GetBySymbol(c *fiber.Ctx) error {
	stock, err := h.svc.GetBySymbol(c.UserContext(), c.Params("symbol"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": stock})
}

type createStockRequest struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Exchange string  `json:"exchange"`
	Sector   string  `json:"sector"`
	Price    float64 `json:"price"`
	Change   float64 `json:"change"`
	Volume   float64 `json:"volume"`
}

// Create lists a new instrument. Admin only.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req createStockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Symbol == "" || req.Name == "" || req.Exchange == "" {
		return fiber.NewError(http.StatusBadRequest, "Symbol, name and exchange are required")
	}

	stock, err := h.svc.Create(c.UserContext(), CreateInput{
		Symbol:   req.Symbol,
		Name:     req.Name,
		Exchange: req.Exchange,
		Sector:   req.Sector,
		Price:    req.Price,
		Change:   req.Change,
		Volume:   req.Volume,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": stock})
}

type updateStockRequest struct {
	Name     *string  `json:"name"`
	Exchange *string  `json:"exchange"`
	Sector   *string  `json:"sector"`
	Price    *float64 `json:"price"`
	Change   *float64 `json:"change"`
	Volume   *float64 `json:"volume"`
}

// Update applies a partial patch to a listing. Admin only.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req updateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	stock, err := h.svc.Update(c.UserContext(), c.Params("symbol"), UpdateInput{
		Name:     req.Name,
		Exchange: req.Exchange,
		Sector:   req.Sector,
		Price:    req.Price,
		Change:   req.Change,
		Volume:   req.Volume,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": stock})
}

// Delete removes a listing. Superadmin only.
func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("symbol")); err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{}})
}

type bulkPricesRequest struct {
	Updates []PriceUpdate `json:"updates"`
}

// BulkUpdatePrices refreshes quote fields for many symbols. Rows are applied
// independently; a failure partway leaves earlier rows in place.
func (h *Handler) BulkUpdatePrices(c *fiber.Ctx) error {
	var req bulkPricesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Updates == nil {
		return fiber.NewError(http.StatusBadRequest, "Array of stock updates required")
	}

	result, err := h.svc.BulkUpdatePrices(c.UserContext(), req.Updates)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": result})
}
