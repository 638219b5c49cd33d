package fitness

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for every session date.
const DateLayout = "2006-01-02"

// FormatDate renders t's calendar date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// NoonIn parses a YYYY-MM-DD string as noon of that day in loc. Noon keeps
// the calendar date stable when the result is later shifted across zones.
func NoonIn(date string, loc *time.Location) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc), nil
}

// WeekStart returns Sunday 00:00 of the week containing today, in today's location.
func WeekStart(today time.Time) time.Time {
	y, m, d := today.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// WeekRange returns the Sunday and Saturday date strings of today's week.
func WeekRange(today time.Time) (start, end string) {
	s := WeekStart(today)
	return FormatDate(s), FormatDate(s.AddDate(0, 0, 6))
}
