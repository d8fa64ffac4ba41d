package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// CartLinesHandler manages the lines of a cart. Access follows the owning cart.
type CartLinesHandler struct {
	lines *service.CartLineService
	carts *service.CartService
}

// NewCartLinesHandler constructs handler.
func NewCartLinesHandler(lines *service.CartLineService, carts *service.CartService) *CartLinesHandler {
	return &CartLinesHandler{lines: lines, carts: carts}
}

// Create POST /v1/cart-lines.
func (h *CartLinesHandler) Create(c *fiber.Ctx) error {
	var req dto.CartLineRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.CartID <= 0 || req.ProductID <= 0 {
		return apperrors.NewValidationError("cart_id and product_id required", nil)
	}
	if req.Quantity <= 0 {
		return apperrors.NewValidationError("quantity must be positive", nil)
	}
	if req.Price != nil && *req.Price < 0 {
		return apperrors.NewValidationError("price must not be negative", nil)
	}
	if _, err := ownedCart(c, h.carts, req.CartID); err != nil {
		return err
	}
	line, err := h.lines.Create(c.UserContext(), service.CartLineCreate{
		CartID:    req.CartID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Price:     req.Price,
	})
	if err != nil {
		return err
	}
	return created(c, "Cart line created", dto.NewCartLineResponse(line))
}

// List GET /v1/cart-lines (admin).
func (h *CartLinesHandler) List(c *fiber.Ctx) error {
	skip, limit := page(c)
	items, err := h.lines.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Cart lines retrieved", dto.MapSlice(items, dto.NewCartLineResponse))
}

// Get GET /v1/cart-lines/:id.
func (h *CartLinesHandler) Get(c *fiber.Ctx) error {
	line, err := h.owned(c)
	if err != nil {
		return err
	}
	return ok(c, "Cart line retrieved", dto.NewCartLineResponse(line))
}

// Update PUT /v1/cart-lines/:id.
func (h *CartLinesHandler) Update(c *fiber.Ctx) error {
	line, err := h.owned(c)
	if err != nil {
		return err
	}
	var req dto.CartLineUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Quantity != nil && *req.Quantity <= 0 {
		return apperrors.NewValidationError("quantity must be positive", nil)
	}
	if (req.Price != nil && *req.Price < 0) || (req.DiscountAmount != nil && *req.DiscountAmount < 0) {
		return apperrors.NewValidationError("price and discount_amount must not be negative", nil)
	}
	updated, err := h.lines.Update(c.UserContext(), line, service.CartLineUpdate{
		Quantity:       req.Quantity,
		Price:          req.Price,
		DiscountAmount: req.DiscountAmount,
	})
	if err != nil {
		return err
	}
	if updated == nil {
		return notFound("cart line", line.ID)
	}
	return ok(c, "Cart line updated", dto.NewCartLineResponse(updated))
}

// Delete DELETE /v1/cart-lines/:id.
func (h *CartLinesHandler) Delete(c *fiber.Ctx) error {
	line, err := h.owned(c)
	if err != nil {
		return err
	}
	removed, err := h.lines.Remove(c.UserContext(), line.ID)
	if err != nil {
		return err
	}
	if removed == nil {
		return notFound("cart line", line.ID)
	}
	return ok(c, "Cart line deleted", dto.NewCartLineResponse(removed))
}

// ApplyDiscount POST /v1/cart-lines/:id/apply-discount?discount_rate=.
func (h *CartLinesHandler) ApplyDiscount(c *fiber.Ctx) error {
	line, err := h.owned(c)
	if err != nil {
		return err
	}
	discountRate, err := rate(c, "discount_rate", 0)
	if err != nil {
		return err
	}
	updated, err := h.lines.ApplyDiscount(c.UserContext(), line.ID, discountRate)
	if err != nil {
		return err
	}
	return ok(c, "Discount applied", dto.NewCartLineResponse(updated))
}

// Tax GET /v1/cart-lines/:id/tax?tax_rate=.
func (h *CartLinesHandler) Tax(c *fiber.Ctx) error {
	line, err := h.owned(c)
	if err != nil {
		return err
	}
	taxRate, err := rate(c, "tax_rate", defaultTaxRate)
	if err != nil {
		return err
	}
	tax, err := h.lines.CalculateTax(c.UserContext(), line.ID, taxRate)
	if err != nil {
		return err
	}
	return ok(c, "Tax calculated", dto.LineTaxResponse{CartLineID: line.ID, TaxRate: taxRate, Tax: tax})
}

func (h *CartLinesHandler) owned(c *fiber.Ctx) (*domain.CartLine, error) {
	lineID, err := parseID(c)
	if err != nil {
		return nil, err
	}
	line, err := h.lines.Get(c.UserContext(), lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, notFound("cart line", lineID)
	}
	if _, err := ownedCart(c, h.carts, line.CartID); err != nil {
		return nil, err
	}
	return line, nil
}
