package reports

import (
	"testing"

	"church_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGeneral_SundayAverages(t *testing.T) {
	attendance := []models.AttendanceRecord{
		{Date: day(2024, 1, 7), AdultMale: intp(20), AdultFemale: intp(20)},
		{Date: day(2024, 1, 14), AdultMale: intp(40), AdultFemale: intp(40)},
	}

	report := BuildGeneral(attendance, nil)

	assert.Equal(t, 2, report.Sunday.Services)
	assert.Equal(t, 30, report.Sunday.AM)
	assert.Equal(t, 30, report.Sunday.AF)
	assert.Equal(t, 60, report.Sunday.AT)
	assert.Equal(t, "0.00", report.Sunday.O1)
}

func TestBuildGeneral_RoundsUpFromCombinedSum(t *testing.T) {
	attendance := []models.AttendanceRecord{
		{Date: day(2024, 1, 1), YouthMale: intp(1), YouthFemale: intp(1), FirstOffering: money("10"), SecondOffering: money("0.01")},
		{Date: day(2024, 1, 8), YouthMale: intp(0), YouthFemale: intp(0), FirstOffering: money("5")},
	}

	report := BuildGeneral(attendance, nil)

	// 1/2 rounds up to 1 for each sex, while the combined 2/2 stays 1
	assert.Equal(t, 1, report.Monday.YM)
	assert.Equal(t, 1, report.Monday.YF)
	assert.Equal(t, 1, report.Monday.YT)
	assert.Equal(t, "7.50", report.Monday.O1)
	assert.Equal(t, "0.01", report.Monday.O2)
	assert.Equal(t, "7.51", report.Monday.OT)
}

func TestBuildGeneral_ExcludesNoServiceRecords(t *testing.T) {
	attendance := []models.AttendanceRecord{
		{Date: day(2024, 1, 4), AdultMale: intp(10)},
		{Date: day(2024, 1, 11), Reason: strp("Crusade")},
		{Date: day(2024, 1, 18), AdultMale: intp(99), Reason: strp("Joint service")},
	}

	report := BuildGeneral(attendance, nil)

	assert.Equal(t, 1, report.Thursday.Services)
	assert.Equal(t, 10, report.Thursday.AM)
}

func TestBuildGeneral_EmptyPeriod(t *testing.T) {
	report := BuildGeneral(nil, nil)

	assert.Equal(t, models.ServiceAverage{O1: "0.00", O2: "0.00", OT: "0.00"}, report.Sunday)
	assert.Equal(t, models.SpecialAverage{}, report.GCK)
	assert.NotNil(t, report.Seminar)
	assert.Empty(t, report.Seminar)
}

func TestBuildGeneral_IgnoresOtherWeekdays(t *testing.T) {
	attendance := []models.AttendanceRecord{{Date: day(2024, 1, 6), AdultMale: intp(50)}}

	report := BuildGeneral(attendance, nil)

	assert.Zero(t, report.Sunday.Services)
	assert.Zero(t, report.Monday.Services)
	assert.Zero(t, report.Thursday.Services)
}

func TestBuildGeneral_SpecialServices(t *testing.T) {
	church := uuid.New()
	special := []models.SpecialServiceRecord{
		{Date: day(2024, 1, 6), Category: models.SpecialGCK, Adults: 100, Youths: 50, Children: 50},
		{Date: day(2024, 2, 3), Category: models.SpecialGCK, Adults: 200, Youths: 100, Children: 100},
		{Date: day(2024, 1, 9), Category: models.SpecialHomeCaringFellowship, Adults: 3, Youths: 1},
		{Date: day(2024, 1, 16), Category: models.SpecialHomeCaringFellowship, Adults: 2, Youths: 1},
		{Date: day(2024, 2, 10), Category: models.SpecialSeminar, Adults: 8, Children: 2, ChurchID: church},
	}

	report := BuildGeneral(nil, special)

	assert.Equal(t, models.SpecialAverage{Services: 2, A: 150, Y: 75, C: 75, T: 300}, report.GCK)
	assert.Equal(t, models.SpecialAverage{Services: 2, A: 3, Y: 1, C: 0, T: 4}, report.HomeCaringFellowship)
	require.Len(t, report.Seminar, 1)
	assert.Equal(t, 10, report.Seminar[0].Total)
	assert.Equal(t, church, *report.Seminar[0].ChurchID)
}
