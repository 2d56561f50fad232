package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the role a user holds inside the church hierarchy.
type Status string

const (
	StatusChurchAdmin  Status = "churchAdmin"
	StatusChurchPastor Status = "churchPastor"
	StatusGroupAdmin   Status = "groupAdmin"
	StatusGroupPastor  Status = "groupPastor"
	StatusManager      Status = "manager"
)

// statusRanks orders the roles from the narrowest (church) to the widest (manager) scope.
var statusRanks = map[Status]int{
	StatusChurchAdmin:  1,
	StatusChurchPastor: 2,
	StatusGroupAdmin:   3,
	StatusGroupPastor:  4,
	StatusManager:      5,
}

// Rank returns the numeric level of the status, 0 for unknown values.
func (s Status) Rank() int {
	return statusRanks[s]
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusRanks[s]
	return ok
}

// IsGroupLevel reports whether s is scoped to a whole group.
func (s Status) IsGroupLevel() bool {
	return s == StatusGroupAdmin || s == StatusGroupPastor
}

// IsChurchLevel reports whether s is scoped to a single church.
func (s Status) IsChurchLevel() bool {
	return s == StatusChurchAdmin || s == StatusChurchPastor
}

// User represents a login account linked to a member of a church.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	Status       Status    `json:"status" db:"status"`
	MemberID     uuid.UUID `json:"memberId" db:"member_id"`
	ChurchID     uuid.UUID `json:"churchId" db:"church_id"`
	GroupID      uuid.UUID `json:"groupId" db:"group_id"`
	RefreshToken *string   `json:"-" db:"refresh_token"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Joined for listings and detail views
	ChurchName      *string `json:"churchName,omitempty"`
	MemberFirstName *string `json:"memberFirstName,omitempty"`
	MemberLastName  *string `json:"memberLastName,omitempty"`
}

// AuthUser is the identity carried inside access tokens and returned on login.
type AuthUser struct {
	ID       uuid.UUID `json:"id"`
	ChurchID uuid.UUID `json:"churchId"`
	GroupID  uuid.UUID `json:"groupId"`
	Status   Status    `json:"status"`
}

// PasswordReset holds a hashed one-time code issued to a user.
type PasswordReset struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	CodeHash  string    `db:"code_hash"`
	CreatedAt time.Time `db:"created_at"`
}

// Credentials for login request
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
