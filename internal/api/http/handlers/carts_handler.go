package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// CartsHandler manages shopping carts and their totals.
type CartsHandler struct {
	carts *service.CartService
}

// NewCartsHandler constructs handler.
func NewCartsHandler(carts *service.CartService) *CartsHandler {
	return &CartsHandler{carts: carts}
}

// Create POST /v1/carts.
func (h *CartsHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.CartRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	customer := id.UserID
	if req.CustomerID != nil && auth.IsAdmin(id.Role) {
		customer = *req.CustomerID
	}
	cart, err := h.carts.CreateForCustomer(c.UserContext(), customer)
	if err != nil {
		return err
	}
	return created(c, "Cart created", dto.NewCartResponse(cart))
}

// Mine GET /v1/carts/me.
func (h *CartsHandler) Mine(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	skip, limit := page(c)
	items, err := h.carts.ListForCustomer(c.UserContext(), id.UserID, skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Carts retrieved", dto.MapSlice(items, dto.NewCartResponse))
}

// List GET /v1/carts (admin).
func (h *CartsHandler) List(c *fiber.Ctx) error {
	skip, limit := page(c)
	items, err := h.carts.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Carts retrieved", dto.MapSlice(items, dto.NewCartResponse))
}

// Get GET /v1/carts/:id.
func (h *CartsHandler) Get(c *fiber.Ctx) error {
	cart, err := h.owned(c)
	if err != nil {
		return err
	}
	return ok(c, "Cart retrieved", dto.NewCartResponse(cart))
}

// Update PUT /v1/carts/:id. Only admins may reassign a cart.
func (h *CartsHandler) Update(c *fiber.Ctx) error {
	cart, err := h.owned(c)
	if err != nil {
		return err
	}
	var req dto.CartRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	id, _ := auth.IdentityFromCtx(c)
	if req.CustomerID != nil && !auth.IsAdmin(id.Role) {
		return apperrors.NewForbidden("The user doesn't have enough privileges")
	}
	updated, err := h.carts.Update(c.UserContext(), cart, service.CartUpdate{CustomerID: req.CustomerID})
	if err != nil {
		return err
	}
	if updated == nil {
		return notFound("cart", cart.ID)
	}
	return ok(c, "Cart updated", dto.NewCartResponse(updated))
}

// Delete DELETE /v1/carts/:id.
func (h *CartsHandler) Delete(c *fiber.Ctx) error {
	cart, err := h.owned(c)
	if err != nil {
		return err
	}
	removed, err := h.carts.Remove(c.UserContext(), cart.ID)
	if err != nil {
		return err
	}
	if removed == nil {
		return notFound("cart", cart.ID)
	}
	return ok(c, "Cart deleted", dto.NewCartResponse(removed))
}

// Total GET /v1/carts/:id/total?tax_rate=.
func (h *CartsHandler) Total(c *fiber.Ctx) error {
	cart, err := h.owned(c)
	if err != nil {
		return err
	}
	taxRate, err := rate(c, "tax_rate", defaultTaxRate)
	if err != nil {
		return err
	}
	total, err := h.carts.CalculateTotal(c.UserContext(), cart.ID, taxRate)
	if err != nil {
		return err
	}
	return ok(c, "Cart total calculated", dto.CartTotalResponse{CartID: cart.ID, TaxRate: taxRate, Total: total})
}

// ApplyDiscount POST /v1/carts/:id/apply-discount?discount_rate=.
func (h *CartsHandler) ApplyDiscount(c *fiber.Ctx) error {
	cart, err := h.owned(c)
	if err != nil {
		return err
	}
	discountRate, err := rate(c, "discount_rate", 0)
	if err != nil {
		return err
	}
	discount, err := h.carts.ApplyDiscount(c.UserContext(), cart.ID, discountRate)
	if err != nil {
		return err
	}
	return ok(c, "Discount applied", dto.DiscountResponse{CartID: cart.ID, DiscountRate: discountRate, Discount: discount})
}

func (h *CartsHandler) owned(c *fiber.Ctx) (*domain.Cart, error) {
	cartID, err := parseID(c)
	if err != nil {
		return nil, err
	}
	return ownedCart(c, h.carts, cartID)
}

// ownedCart loads cartID and checks that the caller owns it or is an admin.
func ownedCart(c *fiber.Ctx, carts *service.CartService, cartID int64) (*domain.Cart, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	cart, err := carts.Get(c.UserContext(), cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, notFound("cart", cartID)
	}
	if err := ensureOwner(id, cart.CustomerID); err != nil {
		return nil, err
	}
	return cart, nil
}
