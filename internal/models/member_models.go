package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"

	CategoryAdult    = "Adult"
	CategoryYouth    = "Youth"
	CategoryChildren = "Children"

	MemberStatusWorker    = "Worker"
	MemberStatusNonWorker = "Non-worker"
)

// Member represents a person registered in a church
type Member struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	FirstName           string    `json:"firstName" db:"first_name"`
	LastName            string    `json:"lastName" db:"last_name"`
	Email               *string   `json:"email,omitempty" db:"email"`
	PhoneNumber         string    `json:"phoneNumber" db:"phone_number"`
	HouseAddress        *string   `json:"houseAddress" db:"house_address"`
	GPSAddress          *string   `json:"gpsAddress" db:"gps_address"`
	Gender              string    `json:"gender" db:"gender"`
	RelationshipStatus  string    `json:"relationshipStatus" db:"relationship_status"`
	Category            string    `json:"category" db:"category"`
	WorkOrSchool        *string   `json:"workOrSchool" db:"work_or_school"`
	LevelOrPosition     *string   `json:"levelOrPosition" db:"level_or_position"`
	ProgramOrDepartment *string   `json:"programOrDepartment" db:"program_or_department"`
	EmergencyContact    string    `json:"emergencyContact" db:"emergency_contact"`
	EmergencyName       string    `json:"emergencyName" db:"emergency_name"`
	EmergencyRelation   string    `json:"emergencyRelation" db:"emergency_relation"`
	EmergencyAddress    *string   `json:"emergencyAddress" db:"emergency_address"`
	MemberStatus        string    `json:"memberStatus" db:"member_status"`
	ProfileImageURL     *string   `json:"profileImageUrl" db:"profile_image_url"`
	ChurchID            uuid.UUID `json:"churchId" db:"church_id"`
	GroupID             uuid.UUID `json:"groupId" db:"group_id"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`

	ChurchName *string `json:"churchName,omitempty"`
}

// MemberCriteria narrows member counts and listings beyond the scope filter.
type MemberCriteria struct {
	Search       string
	Category     string
	Gender       string
	MemberStatus string
}

// Recipient is the slice of a member needed to deliver an SMS.
type Recipient struct {
	FirstName   string
	PhoneNumber string
}
