package domain

import "time"

// Wishlist is a product a customer saved for later.
type Wishlist struct {
	ID         int64
	CustomerID int64
	ProductID  int64
	AddedAt    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
