package dto

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       string(u.Role),
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		LastLogin:  u.LastLogin,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func NewAddressResponse(a *domain.Address) AddressResponse {
	return AddressResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		Title:        string(a.Title),
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		PhoneNumber:  a.PhoneNumber,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func NewCatalogueResponse(p *domain.Catalogue) CatalogueResponse {
	return CatalogueResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewCartResponse(c *domain.Cart) CartResponse {
	return CartResponse{
		ID:          c.ID,
		CustomerID:  c.CustomerID,
		TotalAmount: c.TotalAmount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCartLineResponse(l *domain.CartLine) CartLineResponse {
	return CartLineResponse{
		ID:             l.ID,
		CartID:         l.CartID,
		ProductID:      l.ProductID,
		Quantity:       l.Quantity,
		Price:          l.Price,
		DiscountAmount: l.DiscountAmount,
		Subtotal:       domain.RoundMoney(l.Subtotal()),
		AddedAt:        l.AddedAt,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func NewCheckoutResponse(c *domain.Checkout) CheckoutResponse {
	return CheckoutResponse{
		ID:          c.ID,
		CartID:      c.CartID,
		Status:      string(c.Status),
		TotalAmount: c.TotalAmount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// MapSlice converts every item of items with fn.
func MapSlice[E, R any](items []E, fn func(*E) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}

// NewOfferResponse evaluates Current against the wall clock.
func NewOfferResponse(o *domain.Offer) OfferResponse {
	return OfferResponse{
		ID:                 o.ID,
		Name:               o.Name,
		DiscountPercentage: o.DiscountPercentage,
		StartDate:          o.StartDate,
		EndDate:            o.EndDate,
		IsActive:           o.IsActive,
		Current:            o.ActiveAt(time.Now()),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func NewVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		ID:             v.ID,
		Code:           v.Code,
		DiscountAmount: v.DiscountAmount,
		ExpiryDate:     v.ExpiryDate,
		IsUsed:         v.IsUsed,
		Redeemable:     v.RedeemableAt(time.Now()),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func NewWishlistResponse(w *domain.Wishlist) WishlistResponse {
	return WishlistResponse{
		ID:         w.ID,
		CustomerID: w.CustomerID,
		ProductID:  w.ProductID,
		AddedAt:    w.AddedAt,
	}
}
