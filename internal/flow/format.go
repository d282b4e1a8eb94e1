package flow

import (
	"fmt"
	"time"
)

// FormatDate renders a YYYY-MM-DD session date as "Jan 2, 2006". Unparseable
// input is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

// FormatTime renders a 24-hour "HH:MM" session time as "3:04 PM".
func FormatTime(clock string) string {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return clock
	}
	return t.Format("3:04 PM")
}

// FormatSeats renders the seat counter shown on a session card.
func FormatSeats(left int) string {
	if left <= 0 {
		return "Fully Booked"
	}
	if left == 1 {
		return "1 seat left"
	}
	return fmt.Sprintf("%d seats left", left)
}
