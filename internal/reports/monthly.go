package reports

import (
	"time"

	"church_backend/internal/models"
)

// regularService binds a weekday to the report fields that describe it.
type regularService struct {
	weekday time.Weekday
	monthly func(*models.MonthlyReport) *[]models.DayEntry
	general func(*models.GeneralReport) *models.ServiceAverage
}

var regularServices = []regularService{
	{
		weekday: time.Sunday,
		monthly: func(r *models.MonthlyReport) *[]models.DayEntry { return &r.Sunday },
		general: func(r *models.GeneralReport) *models.ServiceAverage { return &r.Sunday },
	},
	{
		weekday: time.Monday,
		monthly: func(r *models.MonthlyReport) *[]models.DayEntry { return &r.Monday },
		general: func(r *models.GeneralReport) *models.ServiceAverage { return &r.Monday },
	},
	{
		weekday: time.Thursday,
		monthly: func(r *models.MonthlyReport) *[]models.DayEntry { return &r.Thursday },
		general: func(r *models.GeneralReport) *models.ServiceAverage { return &r.Thursday },
	},
}

func monthlySpecialSlot(r *models.MonthlyReport, c models.SpecialServiceCategory) *[]models.SpecialServiceEntry {
	switch c {
	case models.SpecialGCK:
		return &r.GCK
	case models.SpecialHomeCaringFellowship:
		return &r.HomeCaringFellowship
	default:
		return &r.Seminar
	}
}

// BuildMonthly assembles the per-day report of a month from its records. Every
// occurrence of a regular service weekday gets an entry, missing or not, and
// every list in the result is non-nil.
func BuildMonthly(year int, month time.Month, attendance []models.AttendanceRecord, special []models.SpecialServiceRecord) *models.MonthlyReport {
	report := &models.MonthlyReport{}

	byDay := make(map[time.Time][]models.AttendanceRecord)
	for _, r := range attendance {
		day := civilDay(r.Date)
		byDay[day] = append(byDay[day], r)
	}

	for _, svc := range regularServices {
		dates := WeekdayDates(year, month, svc.weekday)
		entries := make([]models.DayEntry, 0, len(dates))
		for _, d := range dates {
			entries = append(entries, AggregateDay(d, byDay[d]))
		}
		*svc.monthly(report) = entries
	}

	for _, sc := range specialCategories {
		records := filterCategory(special, sc.category)
		var entries []models.SpecialServiceEntry
		switch sc.strategy {
		case mergeByDate:
			entries = mergeSpecialByDate(records)
		case listEach:
			entries = listSpecial(records)
		}
		*monthlySpecialSlot(report, sc.category) = entries
	}

	return report
}
