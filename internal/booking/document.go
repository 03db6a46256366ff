package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harbourline/backend-rentals/internal/pricing"
)

// Document is the printable invoice: booking metadata wrapped around the
// engine's line items. The figures are carried over verbatim so the document
// can never disagree with the quote shown at booking time.
type Document struct {
	InvoiceNumber   string          `json:"invoiceNumber"`
	IssuedAt        time.Time       `json:"issuedAt"`
	BookingRef      string          `json:"bookingRef,omitempty"`
	CustomerName    string          `json:"customerName,omitempty"`
	DeliveryAddress string          `json:"deliveryAddress,omitempty"`
	PeriodStart     time.Time       `json:"periodStart"`
	PeriodEnd       time.Time       `json:"periodEnd"`
	Invoice         pricing.Invoice `json:"invoice"`
}

// DocumentMeta is the caller-supplied metadata attached to a document.
type DocumentMeta struct {
	BookingRef      string
	CustomerName    string
	DeliveryAddress string
}

// BuildDocument prices the snapshot through the same engine as Quote and
// wraps the result with invoice metadata.
func (s *Service) BuildDocument(ctx context.Context, snapshot pricing.BookingSnapshot, meta DocumentMeta) (Document, error) {
	invoice, err := s.Quote(ctx, snapshot)
	if err != nil {
		return Document{}, err
	}
	now := time.Now().UTC()
	return Document{
		InvoiceNumber:   newInvoiceNumber(now),
		IssuedAt:        now,
		BookingRef:      strings.TrimSpace(meta.BookingRef),
		CustomerName:    strings.TrimSpace(meta.CustomerName),
		DeliveryAddress: strings.TrimSpace(meta.DeliveryAddress),
		PeriodStart:     snapshot.StartDate,
		PeriodEnd:       snapshot.EndDate,
		Invoice:         invoice,
	}, nil
}

// newInvoiceNumber yields identifiers like INV-20260831-1A2B3C4D. Uniqueness
// comes from the uuid fragment; the date prefix is for humans sorting PDFs.
func newInvoiceNumber(now time.Time) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return "INV-" + now.Format("20060102") + "-" + fragment
}
