package reports

import (
	"errors"
	"fmt"
	"time"
)

// MonthLayout is the YYYY-MM format accepted for report months.
const MonthLayout = "2006-01"

// ErrInvalidMonth is returned when a month string is not in YYYY-MM form.
var ErrInvalidMonth = errors.New("invalid month, please use YYYY-MM")

// ParseMonth splits a YYYY-MM string into its year and month.
func ParseMonth(value string) (int, time.Month, error) {
	t, err := time.Parse(MonthLayout, value)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, value)
	}
	return t.Year(), t.Month(), nil
}

// MonthRange returns the first instant and the last millisecond of a month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// PeriodRange returns the range from the first day of startMonth to the last
// millisecond of endMonth. Both values must be YYYY-MM strings.
func PeriodRange(startMonth, endMonth string) (time.Time, time.Time, error) {
	sy, sm, err := ParseMonth(startMonth)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	ey, em, err := ParseMonth(endMonth)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, _ := MonthRange(sy, sm)
	_, end := MonthRange(ey, em)
	return start, end, nil
}

// WeekdayDates lists, in increasing order, every date of the month falling on weekday.
func WeekdayDates(year int, month time.Month, weekday time.Weekday) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7

	dates := make([]time.Time, 0, 5)
	for d := first.AddDate(0, 0, offset); d.Month() == month; d = d.AddDate(0, 0, 7) {
		dates = append(dates, d)
	}
	return dates
}

// civilDay drops the time of day, keeping the calendar date the value was stored with.
func civilDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sameDay compares calendar dates, ignoring time of day.
func sameDay(a, b time.Time) bool {
	return civilDay(a).Equal(civilDay(b))
}
