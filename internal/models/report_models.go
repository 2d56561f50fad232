package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day format used by reports and request payloads.
const DateLayout = "2006-01-02"

// ReportDate is a calendar day rendered as YYYY-MM-DD.
type ReportDate time.Time

func (d ReportDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(DateLayout) + `"`), nil
}

// Time returns the underlying time value.
func (d ReportDate) Time() time.Time {
	return time.Time(d)
}

// SexBreakdown splits a head count by sex with its total.
type SexBreakdown struct {
	M int `json:"m"`
	F int `json:"f"`
	T int `json:"t"`
}

// OfferingBreakdown holds the two offerings taken during a service.
type OfferingBreakdown struct {
	First  decimal.Decimal `json:"first"`
	Second decimal.Decimal `json:"second"`
	Total  decimal.Decimal `json:"total"`
}

// DayEntry is one calendar occurrence of a regular service in a monthly report.
// Missing entries carry only the date; no-service entries carry only the date and reason.
type DayEntry struct {
	Date            ReportDate         `json:"date"`
	IsMissing       bool               `json:"isMissing"`
	Reason          *string            `json:"reason"`
	Adults          *SexBreakdown      `json:"adults,omitempty"`
	Youth           *SexBreakdown      `json:"youth,omitempty"`
	Children        *SexBreakdown      `json:"children,omitempty"`
	Newcomers       *SexBreakdown      `json:"newcomers,omitempty"`
	Offering        *OfferingBreakdown `json:"offering,omitempty"`
	TotalAttendance *int               `json:"totalAttendance,omitempty"`
}

func (e DayEntry) MarshalJSON() ([]byte, error) {
	if e.IsMissing {
		return json.Marshal(struct {
			Date      ReportDate `json:"date"`
			IsMissing bool       `json:"isMissing"`
		}{e.Date, true})
	}
	type entry DayEntry
	return json.Marshal(entry(e))
}

// SpecialServiceEntry is a special service line in a report: either the merge of
// every record of one date, or a single record when the category is listed.
type SpecialServiceEntry struct {
	Date       ReportDate `json:"date"`
	Adults     int        `json:"adults"`
	Youths     int        `json:"youths"`
	Children   int        `json:"children"`
	Total      int        `json:"total"`
	ChurchID   *uuid.UUID `json:"churchId,omitempty"`
	ChurchName *string    `json:"churchName,omitempty"`
}

// MonthlyReport is the per-day report of a single month.
type MonthlyReport struct {
	GroupName            *string               `json:"groupName"`
	ChurchName           *string               `json:"churchName"`
	Sunday               []DayEntry            `json:"sunday"`
	Monday               []DayEntry            `json:"monday"`
	Thursday             []DayEntry            `json:"thursday"`
	GCK                  []SpecialServiceEntry `json:"gck"`
	HomeCaringFellowship []SpecialServiceEntry `json:"homeCaringFellowship"`
	Seminar              []SpecialServiceEntry `json:"seminar"`
}

// ServiceAverage is the per-service average of a regular service across a period.
// People counts are rounded up, offerings are fixed to two decimals.
type ServiceAverage struct {
	Services int    `json:"services"`
	AM       int    `json:"am"`
	AF       int    `json:"af"`
	AT       int    `json:"at"`
	YM       int    `json:"ym"`
	YF       int    `json:"yf"`
	YT       int    `json:"yt"`
	CM       int    `json:"cm"`
	CF       int    `json:"cf"`
	CT       int    `json:"ct"`
	NM       int    `json:"nm"`
	NF       int    `json:"nf"`
	NT       int    `json:"nt"`
	O1       string `json:"o1"`
	O2       string `json:"o2"`
	OT       string `json:"ot"`
}

// SpecialAverage is the average head count of an averaged special service category.
type SpecialAverage struct {
	Services int `json:"services"`
	A        int `json:"a"`
	Y        int `json:"y"`
	C        int `json:"c"`
	T        int `json:"t"`
}

// GeneralReport is the averaged report over a range of months.
type GeneralReport struct {
	GroupName            *string               `json:"groupName"`
	ChurchName           *string               `json:"churchName"`
	Sunday               ServiceAverage        `json:"sunday"`
	Monday               ServiceAverage        `json:"monday"`
	Thursday             ServiceAverage        `json:"thursday"`
	GCK                  SpecialAverage        `json:"gck"`
	HomeCaringFellowship SpecialAverage        `json:"homeCaringFellowship"`
	Seminar              []SpecialServiceEntry `json:"seminar"`
}
