package domain

import (
	"testing"
	"time"
)

func TestOfferActiveAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)
	offer := Offer{DiscountPercentage: 15, StartDate: start, EndDate: end, IsActive: true}

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before", start.Add(-time.Second), false},
		{"start", start, true},
		{"inside", start.Add(time.Hour), true},
		{"end", end, true},
		{"after", end.Add(time.Second), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := offer.ActiveAt(tc.at); got != tc.want {
				t.Fatalf("ActiveAt = %v, want %v", got, tc.want)
			}
		})
	}

	offer.IsActive = false
	if offer.ActiveAt(start.Add(time.Hour)) {
		t.Fatal("disabled offer reported active")
	}
}

func TestOfferRateClamps(t *testing.T) {
	for pct, want := range map[float64]float64{-5: 0, 0: 0, 25: 0.25, 100: 1, 150: 1} {
		if got := (Offer{DiscountPercentage: pct}).Rate(); got != want {
			t.Fatalf("Rate(%v) = %v, want %v", pct, got, want)
		}
	}
}

func TestVoucherRedeemableAt(t *testing.T) {
	expiry := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	v := Voucher{Code: "SPRING", DiscountAmount: 5, ExpiryDate: expiry}

	if !v.RedeemableAt(expiry.Add(-time.Minute)) {
		t.Fatal("voucher should be redeemable before expiry")
	}
	if v.RedeemableAt(expiry) {
		t.Fatal("voucher redeemable at expiry")
	}
	v.IsUsed = true
	if v.RedeemableAt(expiry.Add(-time.Hour)) {
		t.Fatal("used voucher redeemable")
	}
	if got := NormalizeVoucherCode("  spring10 "); got != "SPRING10" {
		t.Fatalf("NormalizeVoucherCode = %q", got)
	}
}
