package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// AddressesHandler manages the caller's address book.
type AddressesHandler struct {
	addresses *service.AddressService
}

// NewAddressesHandler constructs handler.
func NewAddressesHandler(addresses *service.AddressService) *AddressesHandler {
	return &AddressesHandler{addresses: addresses}
}

// Create POST /v1/addresses.
func (h *AddressesHandler) Create(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req dto.AddressRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	title, err := domain.ParseAddressTitle(req.Title)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	if req.FirstName == "" || req.LastName == "" || req.AddressLine1 == "" || req.City == "" || req.Country == "" {
		return apperrors.NewValidationError("first_name, last_name, address_line1, city, country required", nil)
	}

	owner := id.UserID
	if req.UserID != nil && auth.IsAdmin(id.Role) {
		owner = *req.UserID
	}
	address, err := h.addresses.CreateForUser(c.UserContext(), owner, service.AddressCreate{
		Title:        title,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	})
	if err != nil {
		return err
	}
	return created(c, "Address created", dto.NewAddressResponse(address))
}

// Mine GET /v1/addresses/me.
func (h *AddressesHandler) Mine(c *fiber.Ctx) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	skip, limit := page(c)
	items, err := h.addresses.ListForUser(c.UserContext(), id.UserID, skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Addresses retrieved", dto.MapSlice(items, dto.NewAddressResponse))
}

// List GET /v1/addresses (admin).
func (h *AddressesHandler) List(c *fiber.Ctx) error {
	skip, limit := page(c)
	items, err := h.addresses.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Addresses retrieved", dto.MapSlice(items, dto.NewAddressResponse))
}

// Get GET /v1/addresses/:id.
func (h *AddressesHandler) Get(c *fiber.Ctx) error {
	address, err := h.owned(c)
	if err != nil {
		return err
	}
	return ok(c, "Address retrieved", dto.NewAddressResponse(address))
}

// Update PUT /v1/addresses/:id.
func (h *AddressesHandler) Update(c *fiber.Ctx) error {
	address, err := h.owned(c)
	if err != nil {
		return err
	}
	var req dto.AddressUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	in := service.AddressUpdate{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	}
	if req.Title != nil {
		title, err := domain.ParseAddressTitle(*req.Title)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		in.Title = &title
	}
	updated, err := h.addresses.Update(c.UserContext(), address, in)
	if err != nil {
		return err
	}
	if updated == nil {
		return notFound("address", address.ID)
	}
	return ok(c, "Address updated", dto.NewAddressResponse(updated))
}

// Delete DELETE /v1/addresses/:id.
func (h *AddressesHandler) Delete(c *fiber.Ctx) error {
	address, err := h.owned(c)
	if err != nil {
		return err
	}
	removed, err := h.addresses.Remove(c.UserContext(), address.ID)
	if err != nil {
		return err
	}
	if removed == nil {
		return notFound("address", address.ID)
	}
	return ok(c, "Address deleted", dto.NewAddressResponse(removed))
}

func (h *AddressesHandler) owned(c *fiber.Ctx) (*domain.Address, error) {
	id, err := caller(c)
	if err != nil {
		return nil, err
	}
	addressID, err := parseID(c)
	if err != nil {
		return nil, err
	}
	address, err := h.addresses.Get(c.UserContext(), addressID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, notFound("address", addressID)
	}
	if err := ensureOwner(id, address.UserID); err != nil {
		return nil, err
	}
	return address, nil
}
