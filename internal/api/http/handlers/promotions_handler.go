package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

// OffersHandler serves offers. Reads are open to customers, writes are admin only.
type OffersHandler struct {
	offers *service.OfferService
}

// NewOffersHandler constructs handler.
func NewOffersHandler(offers *service.OfferService) *OffersHandler {
	return &OffersHandler{offers: offers}
}

// List GET /v1/offers.
func (h *OffersHandler) List(c *fiber.Ctx) error {
	skip, limit := page(c)
	items, err := h.offers.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Offers retrieved", dto.MapSlice(items, dto.NewOfferResponse))
}

// Get GET /v1/offers/:id.
func (h *OffersHandler) Get(c *fiber.Ctx) error {
	offer, err := h.load(c)
	if err != nil {
		return err
	}
	return ok(c, "Offer retrieved", dto.NewOfferResponse(offer))
}

// Create POST /v1/offers.
func (h *OffersHandler) Create(c *fiber.Ctx) error {
	var req dto.OfferRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Name == "" || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return apperrors.NewValidationError("name, start_date, end_date required", nil)
	}
	if req.DiscountPercentage < 0 || req.DiscountPercentage > 100 {
		return apperrors.NewValidationError("discount_percentage must be between 0 and 100", nil)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	offer, err := h.offers.Create(c.UserContext(), service.OfferCreate{
		Name:               req.Name,
		DiscountPercentage: req.DiscountPercentage,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		IsActive:           active,
	})
	if err != nil {
		return err
	}
	return created(c, "Offer created", dto.NewOfferResponse(offer))
}

// Update PUT /v1/offers/:id.
func (h *OffersHandler) Update(c *fiber.Ctx) error {
	existing, err := h.load(c)
	if err != nil {
		return err
	}
	var req dto.OfferUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.DiscountPercentage != nil && (*req.DiscountPercentage < 0 || *req.DiscountPercentage > 100) {
		return apperrors.NewValidationError("discount_percentage must be between 0 and 100", nil)
	}
	offer, err := h.offers.Update(c.UserContext(), existing, service.OfferUpdate{
		Name:               req.Name,
		DiscountPercentage: req.DiscountPercentage,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		IsActive:           req.IsActive,
	})
	if err != nil {
		return err
	}
	if offer == nil {
		return notFound("offer", existing.ID)
	}
	return ok(c, "Offer updated", dto.NewOfferResponse(offer))
}

// Delete DELETE /v1/offers/:id.
func (h *OffersHandler) Delete(c *fiber.Ctx) error {
	offerID, err := parseID(c)
	if err != nil {
		return err
	}
	offer, err := h.offers.Remove(c.UserContext(), offerID)
	if err != nil {
		return err
	}
	if offer == nil {
		return notFound("offer", offerID)
	}
	return ok(c, "Offer deleted", dto.NewOfferResponse(offer))
}

func (h *OffersHandler) load(c *fiber.Ctx) (*domain.Offer, error) {
	offerID, err := parseID(c)
	if err != nil {
		return nil, err
	}
	offer, err := h.offers.Get(c.UserContext(), offerID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, notFound("offer", offerID)
	}
	return offer, nil
}

// VouchersHandler manages vouchers. Every route is admin only except the code lookup.
type VouchersHandler struct {
	vouchers *service.VoucherService
}

// NewVouchersHandler constructs handler.
func NewVouchersHandler(vouchers *service.VoucherService) *VouchersHandler {
	return &VouchersHandler{vouchers: vouchers}
}

// List GET /v1/vouchers.
func (h *VouchersHandler) List(c *fiber.Ctx) error {
	skip, limit := page(c)
	items, err := h.vouchers.GetMulti(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return ok(c, "Vouchers retrieved", dto.MapSlice(items, dto.NewVoucherResponse))
}

// Get GET /v1/vouchers/:id.
func (h *VouchersHandler) Get(c *fiber.Ctx) error {
	voucher, err := h.load(c)
	if err != nil {
		return err
	}
	return ok(c, "Voucher retrieved", dto.NewVoucherResponse(voucher))
}

// Lookup GET /v1/vouchers/code/:code.
func (h *VouchersHandler) Lookup(c *fiber.Ctx) error {
	code := c.Params("code")
	voucher, err := h.vouchers.GetByCode(c.UserContext(), code)
	if err != nil {
		return err
	}
	if voucher == nil {
		return apperrors.NewNotFound("voucher", map[string]any{"code": domain.NormalizeVoucherCode(code)})
	}
	return ok(c, "Voucher retrieved", dto.NewVoucherResponse(voucher))
}

// Create POST /v1/vouchers.
func (h *VouchersHandler) Create(c *fiber.Ctx) error {
	var req dto.VoucherRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.ExpiryDate.IsZero() {
		return apperrors.NewValidationError("expiry_date required", nil)
	}
	if req.DiscountAmount < 0 {
		return apperrors.NewValidationError("discount_amount must not be negative", nil)
	}
	voucher, err := h.vouchers.Create(c.UserContext(), service.VoucherCreate{
		Code:           req.Code,
		DiscountAmount: req.DiscountAmount,
		ExpiryDate:     req.ExpiryDate,
	})
	if err != nil {
		return err
	}
	return created(c, "Voucher created", dto.NewVoucherResponse(voucher))
}

// Update PUT /v1/vouchers/:id.
func (h *VouchersHandler) Update(c *fiber.Ctx) error {
	existing, err := h.load(c)
	if err != nil {
		return err
	}
	var req dto.VoucherUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.DiscountAmount != nil && *req.DiscountAmount < 0 {
		return apperrors.NewValidationError("discount_amount must not be negative", nil)
	}
	voucher, err := h.vouchers.Update(c.UserContext(), existing, service.VoucherUpdate{
		DiscountAmount: req.DiscountAmount,
		ExpiryDate:     req.ExpiryDate,
		IsUsed:         req.IsUsed,
	})
	if err != nil {
		return err
	}
	if voucher == nil {
		return notFound("voucher", existing.ID)
	}
	return ok(c, "Voucher updated", dto.NewVoucherResponse(voucher))
}

// Delete DELETE /v1/vouchers/:id.
func (h *VouchersHandler) Delete(c *fiber.Ctx) error {
	voucherID, err := parseID(c)
	if err != nil {
		return err
	}
	voucher, err := h.vouchers.Remove(c.UserContext(), voucherID)
	if err != nil {
		return err
	}
	if voucher == nil {
		return notFound("voucher", voucherID)
	}
	return ok(c, "Voucher deleted", dto.NewVoucherResponse(voucher))
}

func (h *VouchersHandler) load(c *fiber.Ctx) (*domain.Voucher, error) {
	voucherID, err := parseID(c)
	if err != nil {
		return nil, err
	}
	voucher, err := h.vouchers.Get(c.UserContext(), voucherID)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, notFound("voucher", voucherID)
	}
	return voucher, nil
}
