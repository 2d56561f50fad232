package reports

import (
	"church_backend/internal/models"

	"github.com/shopspring/decimal"
)

func generalSpecialSlot(r *models.GeneralReport, c models.SpecialServiceCategory) *models.SpecialAverage {
	switch c {
	case models.SpecialGCK:
		return &r.GCK
	case models.SpecialHomeCaringFellowship:
		return &r.HomeCaringFellowship
	}
	return nil
}

// BuildGeneral averages every regular and special service over the records of a period.
// Records that carry a reason are not services and do not count toward an average.
func BuildGeneral(attendance []models.AttendanceRecord, special []models.SpecialServiceRecord) *models.GeneralReport {
	report := &models.GeneralReport{Seminar: []models.SpecialServiceEntry{}}

	for _, svc := range regularServices {
		held := make([]models.AttendanceRecord, 0)
		for _, r := range attendance {
			if civilDay(r.Date).Weekday() == svc.weekday && !hasReason(r) {
				held = append(held, r)
			}
		}
		*svc.general(report) = averageService(held)
	}

	for _, sc := range specialCategories {
		records := filterCategory(special, sc.category)
		switch sc.strategy {
		case mergeByDate:
			*generalSpecialSlot(report, sc.category) = averageSpecial(records)
		case listEach:
			report.Seminar = listSpecial(records)
		}
	}

	return report
}

// averageService averages the records of one regular service. An empty set averages
// to zeros rather than failing.
func averageService(records []models.AttendanceRecord) models.ServiceAverage {
	t := sumRecords(records)
	n := divisor(len(records))
	d := decimal.NewFromInt(int64(n))

	return models.ServiceAverage{
		Services: len(records),
		AM:       ceilDiv(t.adultMale, n),
		AF:       ceilDiv(t.adultFemale, n),
		AT:       ceilDiv(t.adultMale+t.adultFemale, n),
		YM:       ceilDiv(t.youthMale, n),
		YF:       ceilDiv(t.youthFemale, n),
		YT:       ceilDiv(t.youthMale+t.youthFemale, n),
		CM:       ceilDiv(t.childMale, n),
		CF:       ceilDiv(t.childFemale, n),
		CT:       ceilDiv(t.childMale+t.childFemale, n),
		NM:       ceilDiv(t.newcomerMale, n),
		NF:       ceilDiv(t.newcomerFemale, n),
		NT:       ceilDiv(t.newcomerMale+t.newcomerFemale, n),
		O1:       t.firstOffering.Div(d).StringFixed(2),
		O2:       t.secondOffering.Div(d).StringFixed(2),
		OT:       t.firstOffering.Add(t.secondOffering).Div(d).StringFixed(2),
	}
}

// divisor floors a record count at one.
func divisor(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// ceilDiv rounds sum/n up. Go division truncates toward zero, which already
// rounds non-positive quotients up.
func ceilDiv(sum, n int) int {
	if sum <= 0 {
		return sum / n
	}
	return (sum + n - 1) / n
}
