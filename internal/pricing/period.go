package pricing

import (
	"fmt"
	"math"
	"time"
)

// RentalDays converts the booking window into a whole-day billable duration.
// A rental crossing a fractional day boundary is billed for the partial day
// as a full day (ceiling), and every booking is billed for at least one day.
func RentalDays(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, fmt.Errorf("%w: start %s, end %s",
			ErrInvalidPeriod, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days, nil
}
