package domain

import (
	"strings"
	"time"
)

// Offer is a time boxed percentage discount.
type Offer struct {
	ID                 int64
	Name               string
	DiscountPercentage float64
	StartDate          time.Time
	EndDate            time.Time
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ActiveAt reports whether the offer applies at t. The window is inclusive.
func (o Offer) ActiveAt(t time.Time) bool {
	return o.IsActive && !t.Before(o.StartDate) && !t.After(o.EndDate)
}

// Rate converts the percentage into a discount rate in [0, 1].
func (o Offer) Rate() float64 {
	switch {
	case o.DiscountPercentage <= 0:
		return 0
	case o.DiscountPercentage >= 100:
		return 1
	default:
		return o.DiscountPercentage / 100
	}
}

// Voucher is a single use fixed amount discount identified by a code.
type Voucher struct {
	ID             int64
	Code           string
	DiscountAmount float64
	ExpiryDate     time.Time
	IsUsed         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RedeemableAt reports whether the voucher can still be used at t.
func (v Voucher) RedeemableAt(t time.Time) bool {
	return !v.IsUsed && t.Before(v.ExpiryDate)
}

// NormalizeVoucherCode trims and upper-cases a voucher code.
func NormalizeVoucherCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
