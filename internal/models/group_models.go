package models

import (
	"time"

	"github.com/google/uuid"
)

// Group is the top level of the hierarchy; it owns churches.
type Group struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Location    string    `json:"location" db:"location"`
	Pastor      string    `json:"pastor" db:"pastor"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
	Email       *string   `json:"email,omitempty" db:"email"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Populated by list queries
	Churches *int `json:"churches,omitempty"`
	Members  *int `json:"members,omitempty"`
}

// Church belongs to exactly one group.
type Church struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Location    string    `json:"location" db:"location"`
	Pastor      string    `json:"pastor" db:"pastor"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
	Email       *string   `json:"email,omitempty" db:"email"`
	GroupID     uuid.UUID `json:"groupId" db:"group_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Populated by list queries
	GroupName *string `json:"groupName,omitempty"`
	Members   *int    `json:"members,omitempty"`
}

// ChurchIdentity is the display metadata of a church and its group.
type ChurchIdentity struct {
	Name      string
	GroupName string
}
