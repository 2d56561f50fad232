package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPIStats holds the dashboard counters. Fields that do not apply to the
// caller's status stay nil and are left out of the response.
type KPIStats struct {
	TotalGroups     *int             `json:"totalGroups,omitempty"`
	TotalChurches   *int             `json:"totalChurches,omitempty"`
	TotalUsers      *int             `json:"totalUsers,omitempty"`
	TotalMembers    *int             `json:"totalMembers,omitempty"`
	TotalWorkers    *int             `json:"totalWorkers,omitempty"`
	NewComers       *int             `json:"newComers,omitempty"`
	MonthlyOffering *decimal.Decimal `json:"monthlyOffering,omitempty"`
}

// AttendanceTrendPoint is one month of the attendance chart.
type AttendanceTrendPoint struct {
	Month    string `json:"month"`
	Adults   int    `json:"Adults"`
	Youths   int    `json:"Youths"`
	Children int    `json:"Children"`
}

// OfferingTrendPoint is one month of the offerings chart.
type OfferingTrendPoint struct {
	Month  string          `json:"month"`
	First  decimal.Decimal `json:"First"`
	Second decimal.Decimal `json:"Second"`
}

// DemographicSlice is one wedge of the membership pie chart.
type DemographicSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// PledgePoint is one month of the pledge chart.
type PledgePoint struct {
	Month     string          `json:"month"`
	Pledged   decimal.Decimal `json:"pledged"`
	Fulfilled decimal.Decimal `json:"fulfilled"`
}

// DashboardStats is the full dashboard payload.
type DashboardStats struct {
	Stats        KPIStats               `json:"stats"`
	Attendance   []AttendanceTrendPoint `json:"attendance"`
	Demographics []DemographicSlice     `json:"demographics"`
	Offerings    []OfferingTrendPoint   `json:"offerings"`
	PledgeData   []PledgePoint          `json:"pledgeData"`
}

// MonthlyAttendanceTotals is the sum of every attendance record in one calendar month.
type MonthlyAttendanceTotals struct {
	Month          time.Time
	Adults         int
	Youths         int
	Children       int
	FirstOffering  decimal.Decimal
	SecondOffering decimal.Decimal
}

// PeriodTotals is the newcomer and offering sum of a date range.
type PeriodTotals struct {
	Newcomers int
	Offering  decimal.Decimal
}
