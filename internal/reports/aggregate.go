package reports

import (
	"strings"
	"time"

	"church_backend/internal/models"

	"github.com/shopspring/decimal"
)

// dayTotals is the running sum of a set of attendance records.
type dayTotals struct {
	adultMale, adultFemale       int
	youthMale, youthFemale       int
	childMale, childFemale       int
	newcomerMale, newcomerFemale int
	firstOffering                decimal.Decimal
	secondOffering               decimal.Decimal
	reasons                      []string
}

func (t dayTotals) attendance() int {
	return t.adultMale + t.adultFemale + t.youthMale + t.youthFemale + t.childMale + t.childFemale
}

func (t *dayTotals) add(r models.AttendanceRecord) {
	t.adultMale += count(r.AdultMale)
	t.adultFemale += count(r.AdultFemale)
	t.youthMale += count(r.YouthMale)
	t.youthFemale += count(r.YouthFemale)
	t.childMale += count(r.ChildMale)
	t.childFemale += count(r.ChildFemale)
	t.newcomerMale += count(r.NewcomerMale)
	t.newcomerFemale += count(r.NewcomerFemale)
	t.firstOffering = t.firstOffering.Add(amount(r.FirstOffering))
	t.secondOffering = t.secondOffering.Add(amount(r.SecondOffering))
	if hasReason(r) {
		t.reasons = append(t.reasons, *r.Reason)
	}
}

func sumRecords(records []models.AttendanceRecord) dayTotals {
	var t dayTotals
	for _, r := range records {
		t.add(r)
	}
	return t
}

// AggregateDay merges the attendance records of one calendar date into a report entry.
//
// A date without records is missing. A date whose records add up to zero people but
// carry at least one reason is a no-service day and reports only the joined reasons.
// Any other date reports the full breakdown, even when a reason was also recorded.
func AggregateDay(date time.Time, records []models.AttendanceRecord) models.DayEntry {
	entry := models.DayEntry{Date: models.ReportDate(civilDay(date))}
	if len(records) == 0 {
		entry.IsMissing = true
		return entry
	}

	t := sumRecords(records)
	total := t.attendance()
	if total == 0 && len(t.reasons) > 0 {
		reason := strings.Join(t.reasons, ", ")
		entry.Reason = &reason
		return entry
	}

	entry.Adults = breakdown(t.adultMale, t.adultFemale)
	entry.Youth = breakdown(t.youthMale, t.youthFemale)
	entry.Children = breakdown(t.childMale, t.childFemale)
	entry.Newcomers = breakdown(t.newcomerMale, t.newcomerFemale)
	entry.Offering = &models.OfferingBreakdown{
		First:  t.firstOffering,
		Second: t.secondOffering,
		Total:  t.firstOffering.Add(t.secondOffering),
	}
	entry.TotalAttendance = &total
	return entry
}

func breakdown(m, f int) *models.SexBreakdown {
	return &models.SexBreakdown{M: m, F: f, T: m + f}
}

func count(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func amount(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}

func hasReason(r models.AttendanceRecord) bool {
	return r.Reason != nil && strings.TrimSpace(*r.Reason) != ""
}
