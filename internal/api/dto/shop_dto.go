package dto

import "time"

// AddressRequest creates an address. UserID is only honoured for admins.
type AddressRequest struct {
	UserID       *int64 `json:"user_id"`
	Title        string `json:"title"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// AddressUpdateRequest carries address changes.
type AddressUpdateRequest struct {
	Title        *string `json:"title"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	PhoneNumber  *string `json:"phone_number"`
	AddressLine1 *string `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	PostalCode   *string `json:"postal_code"`
	Country      *string `json:"country"`
}

// AddressResponse view.
type AddressResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Title        string    `json:"title"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	PostalCode   string    `json:"postal_code"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CatalogueRequest creates a product.
type CatalogueRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
}

// CatalogueUpdateRequest carries product changes.
type CatalogueUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
}

// CatalogueResponse view.
type CatalogueResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CartRequest opens a cart. CustomerID is only honoured for admins.
type CartRequest struct {
	CustomerID *int64 `json:"customer_id"`
}

// CartResponse view.
type CartResponse struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CartTotalResponse is the result of a total computation.
type CartTotalResponse struct {
	CartID  int64   `json:"cart_id"`
	TaxRate float64 `json:"tax_rate"`
	Total   float64 `json:"total"`
}

// DiscountResponse reports the aggregate discount applied to a cart.
type DiscountResponse struct {
	CartID       int64   `json:"cart_id"`
	DiscountRate float64 `json:"discount_rate"`
	Discount     float64 `json:"discount"`
}

// CartLineRequest adds a product to a cart. A missing price takes the catalogue price.
type CartLineRequest struct {
	CartID    int64    `json:"cart_id"`
	ProductID int64    `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Price     *float64 `json:"price"`
}

// CartLineUpdateRequest carries line changes.
type CartLineUpdateRequest struct {
	Quantity       *int     `json:"quantity"`
	Price          *float64 `json:"price"`
	DiscountAmount *float64 `json:"discount_amount"`
}

// CartLineResponse view.
type CartLineResponse struct {
	ID             int64     `json:"id"`
	CartID         int64     `json:"cart_id"`
	ProductID      int64     `json:"product_id"`
	Quantity       int       `json:"quantity"`
	Price          float64   `json:"price"`
	DiscountAmount float64   `json:"discount_amount"`
	Subtotal       float64   `json:"subtotal"`
	AddedAt        time.Time `json:"added_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LineTaxResponse is the tax charged on a line.
type LineTaxResponse struct {
	CartLineID int64   `json:"cart_line_id"`
	TaxRate    float64 `json:"tax_rate"`
	Tax        float64 `json:"tax"`
}

// CheckoutRequest starts a checkout.
type CheckoutRequest struct {
	CartID int64  `json:"cart_id"`
	Status string `json:"status"`
}

// CheckoutUpdateRequest moves a checkout to another status.
type CheckoutUpdateRequest struct {
	Status *string `json:"status"`
}

// CheckoutResponse view.
type CheckoutResponse struct {
	ID          int64     `json:"id"`
	CartID      int64     `json:"cart_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
