package repository

import "github.com/spec-kit/shop-service/internal/domain"

// NewUserTable maps the users table.
func NewUserTable() *Table[domain.User] {
	return NewTable("users",
		[]string{"id", "username", "email", "password_hash", "role", "is_active", "is_verified", "last_login", "created_at", "updated_at"},
		func(u *domain.User) []any {
			return []any{&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.IsVerified, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt}
		},
	)
}

// NewAddressTable maps the addresses table.
func NewAddressTable() *Table[domain.Address] {
	return NewTable("addresses",
		[]string{"id", "user_id", "title", "first_name", "last_name", "phone_number", "address_line1", "address_line2", "city", "state", "postal_code", "country", "created_at", "updated_at"},
		func(a *domain.Address) []any {
			return []any{&a.ID, &a.UserID, &a.Title, &a.FirstName, &a.LastName, &a.PhoneNumber, &a.AddressLine1, &a.AddressLine2, &a.City, &a.State, &a.PostalCode, &a.Country, &a.CreatedAt, &a.UpdatedAt}
		},
	)
}

// NewCatalogueTable maps the catalogues table.
func NewCatalogueTable() *Table[domain.Catalogue] {
	return NewTable("catalogues",
		[]string{"id", "name", "description", "price", "stock", "category", "created_at", "updated_at"},
		func(c *domain.Catalogue) []any {
			return []any{&c.ID, &c.Name, &c.Description, &c.Price, &c.Stock, &c.Category, &c.CreatedAt, &c.UpdatedAt}
		},
	)
}

// NewCartTable maps the carts table.
func NewCartTable() *Table[domain.Cart] {
	return NewTable("carts",
		[]string{"id", "customer_id", "total_amount", "created_at", "updated_at"},
		func(c *domain.Cart) []any {
			return []any{&c.ID, &c.CustomerID, &c.TotalAmount, &c.CreatedAt, &c.UpdatedAt}
		},
	)
}

// NewCartLineTable maps the cart_lines table.
func NewCartLineTable() *Table[domain.CartLine] {
	return NewTable("cart_lines",
		[]string{"id", "cart_id", "product_id", "quantity", "price", "discount_amount", "added_at", "created_at", "updated_at"},
		func(l *domain.CartLine) []any {
			return []any{&l.ID, &l.CartID, &l.ProductID, &l.Quantity, &l.Price, &l.DiscountAmount, &l.AddedAt, &l.CreatedAt, &l.UpdatedAt}
		},
	)
}

// NewCheckoutTable maps the checkouts table.
func NewCheckoutTable() *Table[domain.Checkout] {
	return NewTable("checkouts",
		[]string{"id", "cart_id", "status", "total_amount", "created_at", "updated_at"},
		func(c *domain.Checkout) []any {
			return []any{&c.ID, &c.CartID, &c.Status, &c.TotalAmount, &c.CreatedAt, &c.UpdatedAt}
		},
	)
}

// NewOfferTable maps the offers table.
func NewOfferTable() *Table[domain.Offer] {
	return NewTable("offers",
		[]string{"id", "name", "discount_percentage", "start_date", "end_date", "is_active", "created_at", "updated_at"},
		func(o *domain.Offer) []any {
			return []any{&o.ID, &o.Name, &o.DiscountPercentage, &o.StartDate, &o.EndDate, &o.IsActive, &o.CreatedAt, &o.UpdatedAt}
		},
	)
}

// NewVoucherTable maps the vouchers table.
func NewVoucherTable() *Table[domain.Voucher] {
	return NewTable("vouchers",
		[]string{"id", "code", "discount_amount", "expiry_date", "is_used", "created_at", "updated_at"},
		func(v *domain.Voucher) []any {
			return []any{&v.ID, &v.Code, &v.DiscountAmount, &v.ExpiryDate, &v.IsUsed, &v.CreatedAt, &v.UpdatedAt}
		},
	)
}

// NewWishlistTable maps the wishlists table.
func NewWishlistTable() *Table[domain.Wishlist] {
	return NewTable("wishlists",
		[]string{"id", "customer_id", "product_id", "added_at", "created_at", "updated_at"},
		func(w *domain.Wishlist) []any {
			return []any{&w.ID, &w.CustomerID, &w.ProductID, &w.AddedAt, &w.CreatedAt, &w.UpdatedAt}
		},
	)
}
