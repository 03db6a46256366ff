package pricing

import (
	"strings"

	"github.com/harbourline/backend-rentals/internal/money"
)

// CouponKind identifies how a coupon value is interpreted.
type CouponKind string

const (
	// CouponPercentage values are whole percents of the pre-discount subtotal (0-100).
	CouponPercentage CouponKind = "percentage"
	// CouponFixedAmount values are minor units deducted directly.
	CouponFixedAmount CouponKind = "fixed_amount"
)

// Coupon describes a discount code attached to a booking.
type Coupon struct {
	Code  string
	Kind  CouponKind
	Value int64
}

// ParseCouponKind normalises a raw kind string. The legacy "fixed" alias is
// accepted for backward compatibility with older booking records; anything
// unrecognised maps to the empty kind, which discounts nothing.
func ParseCouponKind(raw string) CouponKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "percentage", "percent":
		return CouponPercentage
	case "fixed_amount", "fixed":
		return CouponFixedAmount
	default:
		return ""
	}
}

// Usable reports whether the coupon can produce a non-zero discount.
// Unusable coupons degrade to "no discount" rather than erroring; callers
// that want to audit malformed codes can log when this returns false.
func (c *Coupon) Usable() bool {
	if c == nil || c.Value <= 0 {
		return false
	}
	return c.Kind == CouponPercentage || c.Kind == CouponFixedAmount
}

// ComputeDiscount converts the coupon into a bounded discount amount. The
// discount never exceeds the subtotal it applies to, so the post-discount
// subtotal cannot go negative.
func ComputeDiscount(c *Coupon, preDiscountSubtotal money.Money) money.Money {
	if !c.Usable() || preDiscountSubtotal <= 0 {
		return 0
	}
	var discount money.Money
	switch c.Kind {
	case CouponPercentage:
		discount = money.MulPercent(preDiscountSubtotal, c.Value)
	case CouponFixedAmount:
		discount = money.Money(c.Value)
	}
	if discount > preDiscountSubtotal {
		discount = preDiscountSubtotal
	}
	if discount < 0 {
		return 0
	}
	return discount
}
