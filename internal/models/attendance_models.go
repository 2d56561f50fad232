package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AttendanceRecord is the head count of one regular service of a church.
// A record either carries counts or a Reason explaining why no service was held.
type AttendanceRecord struct {
	ID             uuid.UUID           `json:"id" db:"id"`
	Date           time.Time           `json:"date" db:"date"`
	Reason         *string             `json:"reason" db:"reason"`
	AdultMale      *int                `json:"adultMale" db:"adult_male"`
	AdultFemale    *int                `json:"adultFemale" db:"adult_female"`
	YouthMale      *int                `json:"youthMale" db:"youth_male"`
	YouthFemale    *int                `json:"youthFemale" db:"youth_female"`
	ChildMale      *int                `json:"childMale" db:"child_male"`
	ChildFemale    *int                `json:"childFemale" db:"child_female"`
	NewcomerMale   *int                `json:"newcomerMale" db:"newcomer_male"`
	NewcomerFemale *int                `json:"newcomerFemale" db:"newcomer_female"`
	FirstOffering  decimal.NullDecimal `json:"firstOffering" db:"first_offering"`
	SecondOffering decimal.NullDecimal `json:"secondOffering" db:"second_offering"`
	ChurchID       uuid.UUID           `json:"churchId" db:"church_id"`
	GroupID        uuid.UUID           `json:"groupId" db:"group_id"`
	CreatedAt      time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time           `json:"updatedAt" db:"updated_at"`
}

// SpecialServiceCategory names the kinds of special services that are recorded.
type SpecialServiceCategory string

const (
	SpecialGCK                  SpecialServiceCategory = "GCK"
	SpecialHomeCaringFellowship SpecialServiceCategory = "Home Caring Fellowship"
	SpecialSeminar              SpecialServiceCategory = "Seminar"
)

// Valid reports whether c is a known category.
func (c SpecialServiceCategory) Valid() bool {
	switch c {
	case SpecialGCK, SpecialHomeCaringFellowship, SpecialSeminar:
		return true
	}
	return false
}

// SpecialServiceRecord is the head count of one special service of a church.
type SpecialServiceRecord struct {
	ID        uuid.UUID              `json:"id" db:"id"`
	Date      time.Time              `json:"date" db:"date"`
	Category  SpecialServiceCategory `json:"category" db:"category"`
	Adults    int                    `json:"adults" db:"adults"`
	Youths    int                    `json:"youths" db:"youths"`
	Children  int                    `json:"children" db:"children"`
	ChurchID  uuid.UUID              `json:"churchId" db:"church_id"`
	GroupID   uuid.UUID              `json:"groupId" db:"group_id"`
	CreatedAt time.Time              `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time              `json:"updatedAt" db:"updated_at"`

	// Joined from churches, read only
	ChurchName     *string `json:"churchName,omitempty"`
	ChurchLocation *string `json:"churchLocation,omitempty"`
}

// Total is the sum of the three head counts.
func (r SpecialServiceRecord) Total() int {
	return r.Adults + r.Youths + r.Children
}

// ScopeFilter narrows queries to one church or one group. The zero value matches everything.
// MatchNone is set when a caller supplied a scope id that could not be resolved.
type ScopeFilter struct {
	ChurchID  *uuid.UUID
	GroupID   *uuid.UUID
	MatchNone bool
}

// RecordFilter selects attendance and special service records by date range and scope.
type RecordFilter struct {
	From  time.Time
	To    time.Time
	Scope ScopeFilter
}
