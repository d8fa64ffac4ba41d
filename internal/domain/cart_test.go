package domain

import "testing"

func TestCartLineMath(t *testing.T) {
	line := CartLine{Price: 10, Quantity: 2}

	if got := line.Subtotal(); got != 20 {
		t.Fatalf("subtotal = %v, want 20", got)
	}
	if got := line.Tax(0.1); got != 2 {
		t.Fatalf("tax = %v, want 2", got)
	}
	if got := line.Total(0.1); got != 22 {
		t.Fatalf("total = %v, want 22", got)
	}
}

func TestCartTotalWithDiscount(t *testing.T) {
	lines := []CartLine{{ProductID: 7, Price: 10, Quantity: 2}}

	if got := CartTotal(lines, 0.1); got != 22 {
		t.Fatalf("total before discount = %v, want 22", got)
	}

	discount := ApplyCartDiscount(lines, 0.5)
	if discount != 10 {
		t.Fatalf("discount = %v, want 10", discount)
	}
	if got := lines[0].Tax(0.1); got != 1 {
		t.Fatalf("tax after discount = %v, want 1", got)
	}
	if got := CartTotal(lines, 0.1); got != 11 {
		t.Fatalf("total after discount = %v, want 11", got)
	}
}

func TestCartTotalEmpty(t *testing.T) {
	if got := CartTotal(nil, 0.2); got != 0 {
		t.Fatalf("empty cart total = %v, want 0", got)
	}
}

func TestCartTotalOrderIndependent(t *testing.T) {
	lines := []CartLine{
		{Price: 0.1, Quantity: 3},
		{Price: 19.99, Quantity: 1, DiscountAmount: 2.5},
		{Price: 7.35, Quantity: 4},
		{Price: 0.7, Quantity: 9, DiscountAmount: 0.3},
	}
	want := CartTotal(lines, 0.07)

	perms := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, p := range perms {
		shuffled := make([]CartLine, len(lines))
		for i, idx := range p {
			shuffled[i] = lines[idx]
		}
		if got := CartTotal(shuffled, 0.07); got != want {
			t.Fatalf("permutation %v total = %v, want %v", p, got, want)
		}
	}
}

func TestApplyDiscountClamps(t *testing.T) {
	cases := []struct {
		name string
		rate float64
		want float64
	}{
		{"negative", -0.5, 0},
		{"zero", 0, 0},
		{"full", 1, 30},
		{"over", 1.5, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := CartLine{Price: 15, Quantity: 2}
			if got := line.ApplyDiscount(tc.rate); got != tc.want {
				t.Fatalf("discount = %v, want %v", got, tc.want)
			}
			if line.Total(0.1) < 0 {
				t.Fatalf("total went negative")
			}
		})
	}
}

func TestLineTotalNeverNegative(t *testing.T) {
	line := CartLine{Price: 5, Quantity: 1, DiscountAmount: 50}
	if got := line.Total(0.2); got != 0 {
		t.Fatalf("total = %v, want 0", got)
	}
	if got := line.Tax(0.2); got != 0 {
		t.Fatalf("tax = %v, want 0", got)
	}
}

func TestParseEnums(t *testing.T) {
	if r, err := ParseUserRole("admin"); err != nil || r != UserRoleAdmin {
		t.Fatalf("ParseUserRole(admin) = %q, %v", r, err)
	}
	if _, err := ParseUserRole("root"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if s, err := ParseCheckoutStatus("COMPLETED"); err != nil || s != CheckoutStatusCompleted {
		t.Fatalf("ParseCheckoutStatus = %q, %v", s, err)
	}
	if _, err := ParseAddressTitle("dr"); err == nil {
		t.Fatal("expected error for unknown title")
	}
}
