package pricing

import "errors"

var (
	// ErrInvalidPeriod is returned when the booking end date is not after the start date.
	ErrInvalidPeriod = errors.New("pricing: end date must be after start date")
	// ErrInvalidWaiverRate is returned when the waiver is selected without a usable daily rate.
	ErrInvalidWaiverRate = errors.New("pricing: waiver selected without a valid daily rate")
	// ErrNegativeInput indicates a supplied monetary or distance input was negative.
	ErrNegativeInput = errors.New("pricing: negative monetary or distance input")
	// ErrReconciliation indicates the assembled invoice failed a post-hoc invariant
	// check. This is an engine defect, not bad input; it must always be surfaced.
	ErrReconciliation = errors.New("pricing: invoice failed reconciliation")
)
