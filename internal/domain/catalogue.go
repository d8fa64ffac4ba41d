package domain

import "time"

// Catalogue is a sellable product.
type Catalogue struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
