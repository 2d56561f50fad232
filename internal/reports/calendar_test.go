package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayDates(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		weekday  time.Weekday
		expected []int
	}{
		{"five sundays in october 2023", 2023, time.October, time.Sunday, []int{1, 8, 15, 22, 29}},
		{"four sundays in january 2024", 2024, time.January, time.Sunday, []int{7, 14, 21, 28}},
		{"mondays in january 2024 start on the first", 2024, time.January, time.Monday, []int{1, 8, 15, 22, 29}},
		{"thursdays in a leap february", 2024, time.February, time.Thursday, []int{1, 8, 15, 22, 29}},
		{"thursdays in a common february", 2023, time.February, time.Thursday, []int{2, 9, 16, 23}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := WeekdayDates(tt.year, tt.month, tt.weekday)

			days := make([]int, 0, len(dates))
			for _, d := range dates {
				assert.Equal(t, tt.weekday, d.Weekday())
				assert.Equal(t, tt.month, d.Month())
				assert.Equal(t, time.UTC, d.Location())
				days = append(days, d.Day())
			}
			assert.Equal(t, tt.expected, days)
		})
	}
}

func TestWeekdayDates_CountMatchesCalendar(t *testing.T) {
	for month := time.January; month <= time.December; month++ {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			want := 0
			for d := time.Date(2025, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
				if d.Weekday() == wd {
					want++
				}
			}
			assert.Len(t, WeekdayDates(2025, month, wd), want, "%s %s", month, wd)
		}
	}
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2024, time.February)

	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 999_000_000, time.UTC), end)
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2024-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.January, month)

	for _, bad := range []string{"", "2024", "2024-13", "01-2024", "2024-1-01"} {
		_, _, err := ParseMonth(bad)
		assert.ErrorIs(t, err, ErrInvalidMonth, bad)
	}
}

func TestPeriodRange(t *testing.T) {
	start, end, err := PeriodRange("2023-11", "2024-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.January, 31, 23, 59, 59, 999_000_000, time.UTC), end)

	_, _, err = PeriodRange("2023-11", "nope")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
