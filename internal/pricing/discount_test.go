package pricing

import "testing"

func TestComputeDiscountPercentage(t *testing.T) {
	coupon := &Coupon{Code: "SPRING10", Kind: CouponPercentage, Value: 10}
	if got := ComputeDiscount(coupon, 174000); got != 17400 {
		t.Fatalf("expected 17400, got %d", got)
	}
}

func TestComputeDiscountFixedCapped(t *testing.T) {
	coupon := &Coupon{Code: "BIGSPENDER", Kind: CouponFixedAmount, Value: 500000}
	if got := ComputeDiscount(coupon, 174000); got != 174000 {
		t.Fatalf("fixed discount must cap at subtotal, got %d", got)
	}
}

func TestComputeDiscountLenientFallback(t *testing.T) {
	cases := []struct {
		name   string
		coupon *Coupon
	}{
		{"nil coupon", nil},
		{"zero value", &Coupon{Kind: CouponPercentage, Value: 0}},
		{"unrecognised kind", &Coupon{Kind: "bogo", Value: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeDiscount(tc.coupon, 100000); got != 0 {
				t.Fatalf("expected zero discount, got %d", got)
			}
		})
	}
}

func TestParseCouponKind(t *testing.T) {
	if ParseCouponKind("Percentage") != CouponPercentage {
		t.Fatal("expected percentage kind")
	}
	if ParseCouponKind("fixed") != CouponFixedAmount {
		t.Fatal("legacy fixed alias should map to fixed_amount")
	}
	if ParseCouponKind("fixed_amount") != CouponFixedAmount {
		t.Fatal("expected fixed_amount kind")
	}
	if ParseCouponKind("mystery") != "" {
		t.Fatal("unknown kind should map to empty")
	}
}
