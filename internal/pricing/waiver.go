package pricing

import (
	"fmt"

	"github.com/harbourline/backend-rentals/internal/money"
)

// ComputeWaiver prices the optional damage waiver. When the waiver is not
// selected the charge is zero and no line item is emitted at all; a zero
// line would be ambiguous on the printed invoice. A selected waiver with a
// missing or negative rate is a validation failure.
func ComputeWaiver(selected bool, ratePerDay *money.Money, rentalDays int) (money.Money, error) {
	if !selected {
		return 0, nil
	}
	if ratePerDay == nil {
		return 0, fmt.Errorf("%w: rate missing", ErrInvalidWaiverRate)
	}
	if ratePerDay.IsNegative() {
		return 0, fmt.Errorf("%w: rate %d", ErrInvalidWaiverRate, *ratePerDay)
	}
	return ratePerDay.MulInt(int64(rentalDays)), nil
}
