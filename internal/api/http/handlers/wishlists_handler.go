package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// WishlistsHandler manages the caller's saved products.
type WishlistsHandler struct {
	wishlists *service.WishlistService
}

// NewWishlistsHandler constructs handler.
func NewWishlistsHandler(wishlists *service.WishlistService) *WishlistsHandler {
	return &WishlistsHandler{wishlists: wishlists}
}

// Create POST /v1/wishlists.
func (h *WishlistsHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.WishlistRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.ProductID <= 0 {
		return apperrors.NewValidationError("product_id required", nil)
	}
	entry, err := h.wishlists.CreateForCustomer(c.UserContext(), id.UserID, service.WishlistCreate{ProductID: req.ProductID})
	if err != nil {
		return err
	}
	return created(c, "Wishlist entry created", dto.NewWishlistResponse(entry))
}

// Mine GET /v1/wishlists/me.
func (h *WishlistsHandler) Mine(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	skip, limit := page(c)
	items, err := h.wishlists.ListForCustomer(c.UserContext(), id.UserID, skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Wishlist retrieved", dto.MapSlice(items, dto.NewWishlistResponse))
}

// List GET /v1/wishlists (admin).
func (h *WishlistsHandler) List(c *fiber.Ctx) error {
	skip, limit := page(c)
	items, err := h.wishlists.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Wishlists retrieved", dto.MapSlice(items, dto.NewWishlistResponse))
}

// Delete DELETE /v1/wishlists/:id.
func (h *WishlistsHandler) Delete(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	entryID, err := parseID(c)
	if err != nil {
		return err
	}
	entry, err := h.wishlists.Get(c.UserContext(), entryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return notFound("wishlist", entryID)
	}
	if err := ensureOwner(id, entry.CustomerID); err != nil {
		return err
	}
	removed, err := h.wishlists.Remove(c.UserContext(), entryID)
	if err != nil {
		return err
	}
	if removed == nil {
		return notFound("wishlist", entryID)
	}
	return ok(c, "Wishlist entry deleted", dto.NewWishlistResponse(removed))
}
