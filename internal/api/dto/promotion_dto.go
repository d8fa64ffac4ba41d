package dto

import "time"

// OfferRequest is the payload of POST /v1/offers.
type OfferRequest struct {
	Name               string    `json:"name"`
	DiscountPercentage float64   `json:"discount_percentage"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	IsActive           *bool     `json:"is_active"`
}

// OfferUpdateRequest is the payload of PUT /v1/offers/:id.
type OfferUpdateRequest struct {
	Name               *string    `json:"name"`
	DiscountPercentage *float64   `json:"discount_percentage"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	IsActive           *bool      `json:"is_active"`
}

type OfferResponse struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	DiscountPercentage float64   `json:"discount_percentage"`
	StartDate          time.Time `json:"start_date"`
	EndDate            time.Time `json:"end_date"`
	IsActive           bool      `json:"is_active"`
	Current            bool      `json:"current"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// VoucherRequest is the payload of POST /v1/vouchers.
type VoucherRequest struct {
	Code           string    `json:"code"`
	DiscountAmount float64   `json:"discount_amount"`
	ExpiryDate     time.Time `json:"expiry_date"`
}

// VoucherUpdateRequest is the payload of PUT /v1/vouchers/:id.
type VoucherUpdateRequest struct {
	DiscountAmount *float64   `json:"discount_amount"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	IsUsed         *bool      `json:"is_used"`
}

type VoucherResponse struct {
	ID             int64     `json:"id"`
	Code           string    `json:"code"`
	DiscountAmount float64   `json:"discount_amount"`
	ExpiryDate     time.Time `json:"expiry_date"`
	IsUsed         bool      `json:"is_used"`
	Redeemable     bool      `json:"redeemable"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// WishlistRequest is the payload of POST /v1/wishlists.
type WishlistRequest struct {
	ProductID int64 `json:"product_id"`
}

type WishlistResponse struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	AddedAt    time.Time `json:"added_at"`
}
