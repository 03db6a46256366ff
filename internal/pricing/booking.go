package pricing

import (
	"fmt"
	"time"

	"github.com/harbourline/backend-rentals/internal/money"
)

// BookingSnapshot is the read-only view of a booking the engine prices.
// It is constructed once at the boundary and never mutated during a
// calculation; the engine holds no reference to it after returning.
type BookingSnapshot struct {
	StartDate             time.Time
	EndDate               time.Time
	DailyRateCents        money.Money
	OneWayDistanceKm      float64
	WaiverSelected        bool
	WaiverRateCentsPerDay *money.Money
	Coupon                *Coupon
	TaxRateBasisPoints    *int
}

// Validate rejects malformed input before it reaches any calculator.
// Waiver-specific problems are reported by the waiver calculator with the
// more precise ErrInvalidWaiverRate.
func (b BookingSnapshot) Validate() error {
	if b.DailyRateCents.IsNegative() {
		return fmt.Errorf("%w: daily rate %d", ErrNegativeInput, b.DailyRateCents)
	}
	if b.OneWayDistanceKm < 0 {
		return fmt.Errorf("%w: one-way distance %.2f km", ErrNegativeInput, b.OneWayDistanceKm)
	}
	if b.TaxRateBasisPoints != nil && *b.TaxRateBasisPoints < 0 {
		return fmt.Errorf("%w: tax rate %d bps", ErrNegativeInput, *b.TaxRateBasisPoints)
	}
	if b.Coupon != nil && b.Coupon.Value < 0 {
		return fmt.Errorf("%w: coupon value %d", ErrNegativeInput, b.Coupon.Value)
	}
	return nil
}
