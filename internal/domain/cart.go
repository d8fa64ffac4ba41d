package domain

import (
	"math"
	"sort"
	"time"
)

// Cart groups the lines a customer intends to buy.
type Cart struct {
	ID          int64
	CustomerID  int64
	TotalAmount float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CartLine is a single product entry inside a cart.
type CartLine struct {
	ID             int64
	CartID         int64
	ProductID      int64
	Quantity       int
	Price          float64
	DiscountAmount float64
	AddedAt        time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Subtotal is price times quantity.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

func (l CartLine) taxable() float64 {
	taxable := l.Subtotal() - l.DiscountAmount
	if taxable < 0 {
		return 0
	}
	return taxable
}

// Tax is charged on the discounted subtotal.
func (l CartLine) Tax(taxRate float64) float64 {
	return RoundMoney(l.taxable() * taxRate)
}

// Total is the discounted subtotal plus tax, never negative.
func (l CartLine) Total(taxRate float64) float64 {
	total := l.taxable() * (1 + taxRate)
	if total < 0 {
		return 0
	}
	return RoundMoney(total)
}

// ApplyDiscount replaces the line discount with rate × subtotal and returns it.
// The result is clamped to [0, subtotal].
func (l *CartLine) ApplyDiscount(rate float64) float64 {
	subtotal := l.Subtotal()
	discount := subtotal * rate
	switch {
	case discount < 0:
		discount = 0
	case discount > subtotal:
		discount = subtotal
	}
	l.DiscountAmount = RoundMoney(discount)
	return l.DiscountAmount
}

// CartTotal folds the line totals at taxRate. Totals are summed in sorted
// order so the result does not depend on the order lines were added.
func CartTotal(lines []CartLine, taxRate float64) float64 {
	if len(lines) == 0 {
		return 0
	}
	totals := make([]float64, len(lines))
	for i, line := range lines {
		totals[i] = line.Total(taxRate)
	}
	sort.Float64s(totals)

	var sum float64
	for _, t := range totals {
		sum += t
	}
	return RoundMoney(sum)
}

// ApplyCartDiscount discounts every line at rate and returns the aggregate discount.
func ApplyCartDiscount(lines []CartLine, rate float64) float64 {
	discounts := make([]float64, len(lines))
	for i := range lines {
		discounts[i] = lines[i].ApplyDiscount(rate)
	}
	sort.Float64s(discounts)

	var sum float64
	for _, d := range discounts {
		sum += d
	}
	return RoundMoney(sum)
}

// RoundMoney rounds to whole cents.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
