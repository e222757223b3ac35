package view

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jobtrack/jobtrack-go/internal/model"
)

const displayLayout = "Jan 2, 2006"

const day = 24 * time.Hour

// DaysSince returns the number of calendar days between the applied date and
// today. Both sides are taken at midnight, so the time of day never matters.
// ok is false when date is not a YYYY-MM-DD value.
func DaysSince(clock clockwork.Clock, date string) (days int, ok bool) {
	applied, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return 0, false
	}

	now := clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(today.Sub(applied) / day), true
}

// FormatDays renders a day count as "1 day" or "N days".
func FormatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// FormatDate renders a YYYY-MM-DD date as "Jan 2, 2006". Anything else is
// returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(displayLayout)
}
