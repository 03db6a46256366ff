package pricing

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/harbourline/backend-rentals/internal/money"
)

func testSnapshot() BookingSnapshot {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	taxBps := 1500
	return BookingSnapshot{
		StartDate:          start,
		EndDate:            start.AddDate(0, 0, 3),
		DailyRateCents:     45000,
		OneWayDistanceKm:   45,
		Coupon:             &Coupon{Code: "SPRING10", Kind: CouponPercentage, Value: 10},
		TaxRateBasisPoints: &taxBps,
	}
}

func TestQuoteNilTaxRateUsesDefault(t *testing.T) {
	snapshot := testSnapshot()
	snapshot.TaxRateBasisPoints = nil

	inv, err := NewEngine().Quote(snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.TaxRateBasisPoints != 1500 {
		t.Fatalf("expected default 1500 bps, got %d", inv.TaxRateBasisPoints)
	}
	if inv.TaxCents != 23490 {
		t.Fatalf("expected tax 23490 at the default rate, got %d", inv.TaxCents)
	}
}

func TestQuoteExplicitZeroTaxRateIsExempt(t *testing.T) {
	snapshot := testSnapshot()
	zero := 0
	snapshot.TaxRateBasisPoints = &zero

	inv, err := NewEngine().Quote(snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.TaxRateBasisPoints != 0 {
		t.Fatalf("expected 0 bps to survive, got %d", inv.TaxRateBasisPoints)
	}
	if inv.TaxCents != 0 {
		t.Fatalf("tax-exempt booking must carry zero tax, got %d", inv.TaxCents)
	}
	if inv.TotalCents != inv.SubtotalBeforeDiscountCents-inv.DiscountCents {
		t.Fatalf("total %d must equal post-discount subtotal %d",
			inv.TotalCents, inv.SubtotalBeforeDiscountCents-inv.DiscountCents)
	}
}

func TestQuoteEndToEndScenario(t *testing.T) {
	// $450/day for 3 days, 45 km delivery, no waiver, 10% coupon, 15% HST.
	inv, err := NewEngine().Quote(testSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.RentalDays != 3 {
		t.Fatalf("expected 3 rental days, got %d", inv.RentalDays)
	}
	if inv.SubtotalBeforeDiscountCents != 174000 {
		t.Fatalf("expected pre-discount subtotal 174000, got %d", inv.SubtotalBeforeDiscountCents)
	}
	if inv.DiscountCents != 17400 {
		t.Fatalf("expected discount 17400, got %d", inv.DiscountCents)
	}
	if inv.TaxCents != 23490 {
		t.Fatalf("expected tax 23490, got %d", inv.TaxCents)
	}
	if inv.TotalCents != 180090 {
		t.Fatalf("expected total 180090, got %d", inv.TotalCents)
	}

	wantKinds := []LineKind{LineRental, LineTransportOutbound, LineTransportReturn, LineDiscount, LineTax}
	if len(inv.Lines) != len(wantKinds) {
		t.Fatalf("expected %d lines, got %d", len(wantKinds), len(inv.Lines))
	}
	for i, kind := range wantKinds {
		if inv.Lines[i].Kind != kind {
			t.Fatalf("line %d: expected kind %s, got %s", i, kind, inv.Lines[i].Kind)
		}
	}
	if inv.Lines[1].AmountCents != 19500 || inv.Lines[2].AmountCents != 19500 {
		t.Fatalf("expected 19500 per transport leg, got %d and %d", inv.Lines[1].AmountCents, inv.Lines[2].AmountCents)
	}
	if inv.Lines[3].AmountCents != -17400 {
		t.Fatalf("discount line must be negative, got %d", inv.Lines[3].AmountCents)
	}
}

func TestQuoteIdempotent(t *testing.T) {
	engine := NewEngine()
	snap := testSnapshot()
	first, err := engine.Quote(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := engine.Quote(snap)
		if err != nil {
			t.Fatalf("unexpected error on repeat %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("repeat %d produced a different invoice", i)
		}
	}
}

func TestQuoteInvariants(t *testing.T) {
	waiverRate := money.Money(2500)
	snaps := map[string]BookingSnapshot{
		"base scenario": testSnapshot(),
		"with waiver": func() BookingSnapshot {
			s := testSnapshot()
			s.WaiverSelected = true
			s.WaiverRateCentsPerDay = &waiverRate
			return s
		}(),
		"fixed coupon larger than subtotal": func() BookingSnapshot {
			s := testSnapshot()
			s.Coupon = &Coupon{Code: "COMP", Kind: CouponFixedAmount, Value: 99999999}
			return s
		}(),
		"no coupon short local rental": func() BookingSnapshot {
			s := testSnapshot()
			s.Coupon = nil
			s.OneWayDistanceKm = 5
			s.EndDate = s.StartDate.Add(4 * time.Hour)
			return s
		}(),
	}
	engine := NewEngine()
	for name, snap := range snaps {
		t.Run(name, func(t *testing.T) {
			inv, err := engine.Quote(snap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if inv.TotalCents != inv.SubtotalBeforeDiscountCents-inv.DiscountCents+inv.TaxCents {
				t.Fatalf("total identity violated: %+v", inv)
			}
			if inv.DiscountCents > inv.SubtotalBeforeDiscountCents {
				t.Fatalf("discount exceeds subtotal: %+v", inv)
			}
			for _, line := range inv.Lines {
				if line.Kind != LineDiscount && line.AmountCents < 0 {
					t.Fatalf("non-discount line %q is negative", line.Label)
				}
			}
		})
	}
}

func TestQuoteFixedCouponReducesToTaxOnZero(t *testing.T) {
	snap := testSnapshot()
	snap.Coupon = &Coupon{Code: "COMP", Kind: CouponFixedAmount, Value: 99999999}
	inv, err := NewEngine().Quote(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.DiscountCents != inv.SubtotalBeforeDiscountCents {
		t.Fatalf("expected discount to equal subtotal, got %d vs %d", inv.DiscountCents, inv.SubtotalBeforeDiscountCents)
	}
	if inv.TaxCents != 0 || inv.TotalCents != 0 {
		t.Fatalf("expected zero tax and total on fully discounted booking, got tax %d total %d", inv.TaxCents, inv.TotalCents)
	}
}

func TestQuoteTaxComputedAfterDiscount(t *testing.T) {
	engine := NewEngine()
	ten := testSnapshot()
	twenty := testSnapshot()
	twenty.Coupon = &Coupon{Code: "SPRING20", Kind: CouponPercentage, Value: 20}

	invTen, err := engine.Quote(ten)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	invTwenty, err := engine.Quote(twenty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subtotalDelta := invTwenty.DiscountCents - invTen.DiscountCents
	wantTaxDelta := money.MulBps(subtotalDelta, 1500)
	if invTen.TaxCents-invTwenty.TaxCents != wantTaxDelta {
		t.Fatalf("tax must shrink by exactly round(delta*rate): got %d, want %d",
			invTen.TaxCents-invTwenty.TaxCents, wantTaxDelta)
	}
	if invTwenty.TaxCents >= invTen.TaxCents {
		t.Fatal("larger discount must strictly decrease tax")
	}
}

func TestQuoteWaiverLineOmittedWhenNotSelected(t *testing.T) {
	inv, err := NewEngine().Quote(testSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, line := range inv.Lines {
		if line.Kind == LineWaiver {
			t.Fatal("waiver line must be omitted entirely when not selected")
		}
	}
}

func TestQuoteValidationErrors(t *testing.T) {
	engine := NewEngine()

	invalidPeriod := testSnapshot()
	invalidPeriod.EndDate = invalidPeriod.StartDate
	if _, err := engine.Quote(invalidPeriod); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}

	missingWaiverRate := testSnapshot()
	missingWaiverRate.WaiverSelected = true
	if _, err := engine.Quote(missingWaiverRate); !errors.Is(err, ErrInvalidWaiverRate) {
		t.Fatalf("expected ErrInvalidWaiverRate, got %v", err)
	}

	negativeRate := money.Money(-100)
	negativeWaiver := testSnapshot()
	negativeWaiver.WaiverSelected = true
	negativeWaiver.WaiverRateCentsPerDay = &negativeRate
	if _, err := engine.Quote(negativeWaiver); !errors.Is(err, ErrInvalidWaiverRate) {
		t.Fatalf("expected ErrInvalidWaiverRate, got %v", err)
	}

	negativeDaily := testSnapshot()
	negativeDaily.DailyRateCents = -1
	if _, err := engine.Quote(negativeDaily); !errors.Is(err, ErrNegativeInput) {
		t.Fatalf("expected ErrNegativeInput, got %v", err)
	}

	negativeDistance := testSnapshot()
	negativeDistance.OneWayDistanceKm = -4
	if _, err := engine.Quote(negativeDistance); !errors.Is(err, ErrNegativeInput) {
		t.Fatalf("expected ErrNegativeInput, got %v", err)
	}
}

func TestQuoteUnrecognisedCouponDegradesToNoDiscount(t *testing.T) {
	snap := testSnapshot()
	snap.Coupon = &Coupon{Code: "WHEEL", Kind: "spin_wheel", Value: 25}
	inv, err := NewEngine().Quote(snap)
	if err != nil {
		t.Fatalf("expected lenient fallback, got %v", err)
	}
	if inv.DiscountCents != 0 {
		t.Fatalf("expected zero discount, got %d", inv.DiscountCents)
	}
	for _, line := range inv.Lines {
		if line.Kind == LineDiscount {
			t.Fatal("no discount line expected for unusable coupon")
		}
	}
}
