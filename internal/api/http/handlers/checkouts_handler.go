package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// CheckoutsHandler manages checkouts. Access follows the referenced cart.
type CheckoutsHandler struct {
	checkouts *service.CheckoutService
	carts     *service.CartService
}

// NewCheckoutsHandler constructs handler.
func NewCheckoutsHandler(checkouts *service.CheckoutService, carts *service.CartService) *CheckoutsHandler {
	return &CheckoutsHandler{checkouts: checkouts, carts: carts}
}

// Create POST /v1/checkouts.
func (h *CheckoutsHandler) Create(c *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.CartID <= 0 {
		return apperrors.NewValidationError("cart_id required", nil)
	}
	in := service.CheckoutCreate{CartID: req.CartID}
	if req.Status != "" {
		status, err := domain.ParseCheckoutStatus(req.Status)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		in.Status = status
	}
	if _, err := ownedCart(c, h.carts, req.CartID); err != nil {
		return err
	}
	checkout, err := h.checkouts.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return created(c, "Checkout created", dto.NewCheckoutResponse(checkout))
}

// List GET /v1/checkouts (admin).
func (h *CheckoutsHandler) List(c *fiber.Ctx) error {
	skip, limit := page(c)
	items, err := h.checkouts.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Checkouts retrieved", dto.MapSlice(items, dto.NewCheckoutResponse))
}

// Get GET /v1/checkouts/:id.
func (h *CheckoutsHandler) Get(c *fiber.Ctx) error {
	checkout, err := h.owned(c)
	if err != nil {
		return err
	}
	return ok(c, "Checkout retrieved", dto.NewCheckoutResponse(checkout))
}

// Update PUT /v1/checkouts/:id.
func (h *CheckoutsHandler) Update(c *fiber.Ctx) error {
	checkout, err := h.owned(c)
	if err != nil {
		return err
	}
	var req dto.CheckoutUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	var in service.CheckoutUpdate
	if req.Status != nil {
		status, err := domain.ParseCheckoutStatus(*req.Status)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		in.Status = &status
	}
	updated, err := h.checkouts.Update(c.UserContext(), checkout, in)
	if err != nil {
		return err
	}
	if updated == nil {
		return notFound("checkout", checkout.ID)
	}
	return ok(c, "Checkout updated", dto.NewCheckoutResponse(updated))
}

// Delete DELETE /v1/checkouts/:id.
func (h *CheckoutsHandler) Delete(c *fiber.Ctx) error {
	checkout, err := h.owned(c)
	if err != nil {
		return err
	}
	removed, err := h.checkouts.Remove(c.UserContext(), checkout.ID)
	if err != nil {
		return err
	}
	if removed == nil {
		return notFound("checkout", checkout.ID)
	}
	return ok(c, "Checkout deleted", dto.NewCheckoutResponse(removed))
}

func (h *CheckoutsHandler) owned(c *fiber.Ctx) (*domain.Checkout, error) {
	checkoutID, err := parseID(c)
	if err != nil {
		return nil, err
	}
	checkout, err := h.checkouts.Get(c.UserContext(), checkoutID)
	if err != nil {
		return nil, err
	}
	if checkout == nil {
		return nil, notFound("checkout", checkoutID)
	}
	if _, err := ownedCart(c, h.carts, checkout.CartID); err != nil {
		return nil, err
	}
	return checkout, nil
}
