package money

import "fmt"

// Money is a monetary amount expressed in minor units (cents). Keeping
// amounts in integer cents avoids binary floating-point drift in invoice
// arithmetic.
type Money int64

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m minus other, saturating at zero. Callers that must detect a
// genuinely negative intermediate result should compare the operands first;
// Sub exists for display-style partials that are never allowed below zero.
func (m Money) Sub(other Money) Money {
	if other >= m {
		return 0
	}
	return m - other
}

// MulInt scales the amount by a unitless integer such as a day count.
func (m Money) MulInt(n int64) Money {
	return m * Money(n)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// MulRatio multiplies the amount by num/den and rounds half up to the
// nearest cent. Every derived invoice quantity goes through exactly one
// rounding point, so the result of MulRatio must never be rounded again.
func MulRatio(m Money, num, den int64) Money {
	if den == 0 {
		return 0
	}
	product := int64(m) * num
	if product >= 0 {
		return Money((product + den/2) / den)
	}
	return Money(-((-product + den/2) / den))
}

// MulBps applies a rate expressed in basis points (1500 == 15%).
func MulBps(m Money, bps int64) Money {
	return MulRatio(m, bps, 10000)
}

// MulPercent applies a whole-or-fractional percentage expressed as an
// integer percent value (10 == 10%).
func MulPercent(m Money, percent int64) Money {
	return MulRatio(m, percent, 100)
}

// ScaleKm multiplies a per-kilometre rate by a real distance and rounds
// half up to the nearest cent.
func ScaleKm(rate Money, km float64) Money {
	if km <= 0 {
		return 0
	}
	scaled := float64(rate) * km
	return Money(int64(scaled + 0.5))
}

// Dollars renders the amount as a dollar string for line-item labels,
// e.g. 180090 -> "$1800.90". Negative amounts carry a leading minus.
func (m Money) Dollars() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}
