package pricing

import (
	"fmt"
	"strconv"

	"github.com/harbourline/backend-rentals/internal/money"
)

// LineKind classifies an invoice line item.
type LineKind string

const (
	LineRental            LineKind = "rental"
	LineTransportOutbound LineKind = "transport_outbound"
	LineTransportReturn   LineKind = "transport_return"
	LineWaiver            LineKind = "waiver"
	LineDiscount          LineKind = "discount"
	LineTax               LineKind = "tax"
)

// LineItem is one labelled, signed monetary entry on the invoice. Discount
// amounts are negative; every other kind is non-negative.
type LineItem struct {
	Label       string      `json:"label"`
	Kind        LineKind    `json:"kind"`
	AmountCents money.Money `json:"amountCents"`
}

// Invoice is the complete, internally consistent pricing result for one
// booking snapshot. It is constructed fresh on every calculation and never
// mutated afterwards.
type Invoice struct {
	Lines                       []LineItem  `json:"lines"`
	RentalDays                  int         `json:"rentalDays"`
	SubtotalBeforeDiscountCents money.Money `json:"subtotalBeforeDiscountCents"`
	DiscountCents               money.Money `json:"discountCents"`
	TaxCents                    money.Money `json:"taxCents"`
	TaxRateBasisPoints          int         `json:"taxRateBasisPoints"`
	TotalCents                  money.Money `json:"totalCents"`
	Currency                    string      `json:"currency"`
}

// Engine turns booking snapshots into invoices. It is a pure function of
// its inputs: no I/O, no shared state, safe for concurrent use. Both the
// summary card and the printable invoice call the same engine so their
// figures can never diverge.
type Engine struct {
	Tariff        Tariff
	DefaultTaxBps int
	Currency      string
	TaxLabel      string
}

// NewEngine builds an engine with the standard rate card and 15% HST.
func NewEngine() Engine {
	return Engine{
		Tariff:        DefaultTariff(),
		DefaultTaxBps: 1500,
		Currency:      "CAD",
		TaxLabel:      "HST",
	}
}

// Quote computes the invoice for the snapshot. Calculators run in a fixed
// order (rental, transport, waiver, discount, tax) and the assembled
// invoice is verified against the engine invariants before it is returned;
// an inconsistent result is never exposed.
func (e Engine) Quote(b BookingSnapshot) (Invoice, error) {
	if err := b.Validate(); err != nil {
		return Invoice{}, err
	}

	days, err := RentalDays(b.StartDate, b.EndDate)
	if err != nil {
		return Invoice{}, err
	}
	rental := b.DailyRateCents.MulInt(int64(days))

	transport, err := ComputeTransport(b.OneWayDistanceKm, e.Tariff)
	if err != nil {
		return Invoice{}, err
	}

	waiver, err := ComputeWaiver(b.WaiverSelected, b.WaiverRateCentsPerDay, days)
	if err != nil {
		return Invoice{}, err
	}

	preDiscount := rental.Add(transport.RoundTripCents).Add(waiver)
	discount := ComputeDiscount(b.Coupon, preDiscount)

	// A nil rate means the snapshot carries no jurisdiction of its own and
	// takes the configured default; an explicit zero is a tax-exempt booking.
	taxBps := e.DefaultTaxBps
	if b.TaxRateBasisPoints != nil {
		taxBps = *b.TaxRateBasisPoints
	}
	tax := ComputeTax(preDiscount-discount, taxBps)
	total := preDiscount - discount + tax

	lines := make([]LineItem, 0, 6)
	lines = append(lines, LineItem{
		Label:       fmt.Sprintf("Equipment rental (%d %s × %s/day)", days, dayWord(days), b.DailyRateCents.Dollars()),
		Kind:        LineRental,
		AmountCents: rental,
	})
	lines = append(lines, LineItem{
		Label:       transportLabel("delivery", transport.ExtraKm),
		Kind:        LineTransportOutbound,
		AmountCents: transport.PerDirectionCents,
	})
	lines = append(lines, LineItem{
		Label:       transportLabel("pickup", transport.ExtraKm),
		Kind:        LineTransportReturn,
		AmountCents: transport.PerDirectionCents,
	})
	if b.WaiverSelected {
		lines = append(lines, LineItem{
			Label:       fmt.Sprintf("Damage waiver (%d %s × %s/day)", days, dayWord(days), b.WaiverRateCentsPerDay.Dollars()),
			Kind:        LineWaiver,
			AmountCents: waiver,
		})
	}
	if discount > 0 {
		lines = append(lines, LineItem{
			Label:       discountLabel(b.Coupon),
			Kind:        LineDiscount,
			AmountCents: -discount,
		})
	}
	lines = append(lines, LineItem{
		Label:       fmt.Sprintf("%s (%s)", e.taxLabel(), formatBpsPercent(taxBps)),
		Kind:        LineTax,
		AmountCents: tax,
	})

	inv := Invoice{
		Lines:                       lines,
		RentalDays:                  days,
		SubtotalBeforeDiscountCents: preDiscount,
		DiscountCents:               discount,
		TaxCents:                    tax,
		TaxRateBasisPoints:          taxBps,
		TotalCents:                  total,
		Currency:                    e.currency(),
	}
	if err := inv.reconcile(); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// reconcile re-checks every invariant on the assembled invoice. A failure
// here is a defect in the engine itself, surfaced as ErrReconciliation.
func (inv Invoice) reconcile() error {
	if inv.TotalCents != inv.SubtotalBeforeDiscountCents-inv.DiscountCents+inv.TaxCents {
		return fmt.Errorf("%w: total %d != subtotal %d - discount %d + tax %d",
			ErrReconciliation, inv.TotalCents, inv.SubtotalBeforeDiscountCents, inv.DiscountCents, inv.TaxCents)
	}
	if inv.DiscountCents < 0 || inv.DiscountCents > inv.SubtotalBeforeDiscountCents {
		return fmt.Errorf("%w: discount %d out of range for subtotal %d",
			ErrReconciliation, inv.DiscountCents, inv.SubtotalBeforeDiscountCents)
	}
	expectedTax := ComputeTax(inv.SubtotalBeforeDiscountCents-inv.DiscountCents, inv.TaxRateBasisPoints)
	if inv.TaxCents != expectedTax {
		return fmt.Errorf("%w: tax %d, expected %d on post-discount subtotal",
			ErrReconciliation, inv.TaxCents, expectedTax)
	}

	var chargeSum, discountSum money.Money
	for _, line := range inv.Lines {
		switch line.Kind {
		case LineDiscount:
			if line.AmountCents > 0 {
				return fmt.Errorf("%w: discount line %q is positive", ErrReconciliation, line.Label)
			}
			discountSum -= line.AmountCents
		case LineTax:
			if line.AmountCents != inv.TaxCents {
				return fmt.Errorf("%w: tax line %q disagrees with tax total", ErrReconciliation, line.Label)
			}
		default:
			if line.AmountCents.IsNegative() {
				return fmt.Errorf("%w: line %q is negative", ErrReconciliation, line.Label)
			}
			chargeSum = chargeSum.Add(line.AmountCents)
		}
	}
	if chargeSum != inv.SubtotalBeforeDiscountCents {
		return fmt.Errorf("%w: charge lines sum to %d, subtotal is %d",
			ErrReconciliation, chargeSum, inv.SubtotalBeforeDiscountCents)
	}
	if discountSum != inv.DiscountCents {
		return fmt.Errorf("%w: discount lines sum to %d, discount is %d",
			ErrReconciliation, discountSum, inv.DiscountCents)
	}
	return nil
}

func (e Engine) currency() string {
	if e.Currency == "" {
		return "CAD"
	}
	return e.Currency
}

func (e Engine) taxLabel() string {
	if e.TaxLabel == "" {
		return "HST"
	}
	return e.TaxLabel
}

func transportLabel(leg string, extraKm float64) string {
	if extraKm > 0 {
		return fmt.Sprintf("Transport %s (incl. %.1f extra km)", leg, extraKm)
	}
	return fmt.Sprintf("Transport %s (standard mileage)", leg)
}

func discountLabel(c *Coupon) string {
	if c == nil || c.Code == "" {
		return "Discount"
	}
	return fmt.Sprintf("Discount (%s)", c.Code)
}

func dayWord(days int) string {
	if days == 1 {
		return "day"
	}
	return "days"
}

func formatBpsPercent(bps int) string {
	if bps%100 == 0 {
		return strconv.Itoa(bps/100) + "%"
	}
	return strconv.FormatFloat(float64(bps)/100, 'f', -1, 64) + "%"
}
