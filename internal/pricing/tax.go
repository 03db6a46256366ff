package pricing

import "github.com/harbourline/backend-rentals/internal/money"

// ComputeTax applies the rate to the post-discount subtotal. Tax is always
// computed after the discount; the assembler re-derives this figure during
// reconciliation to guard against the tax-before-discount defect class.
func ComputeTax(postDiscountSubtotal money.Money, rateBps int) money.Money {
	if postDiscountSubtotal <= 0 || rateBps <= 0 {
		return 0
	}
	return money.MulBps(postDiscountSubtotal, int64(rateBps))
}
