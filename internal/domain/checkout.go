package domain

import (
	"fmt"
	"strings"
	"time"
)

// CheckoutStatus enumerates checkout lifecycle states.
type CheckoutStatus string

const (
	CheckoutStatusInProgress CheckoutStatus = "in_progress"
	CheckoutStatusCompleted  CheckoutStatus = "completed"
	CheckoutStatusCancelled  CheckoutStatus = "cancelled"
)

// ParseCheckoutStatus validates a status name.
func ParseCheckoutStatus(raw string) (CheckoutStatus, error) {
	status := CheckoutStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case CheckoutStatusInProgress, CheckoutStatusCompleted, CheckoutStatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("unknown checkout status %q", raw)
	}
}

// Checkout freezes a cart total while the order is being placed.
type Checkout struct {
	ID          int64
	CartID      int64
	Status      CheckoutStatus
	TotalAmount float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
