package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the tag that selects which role profile a user owns.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleUniversity Role = "UNIVERSITY"
	RoleCompany    Role = "COMPANY"
	RoleAdmin      Role = "ADMIN"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleUniversity, RoleCompany, RoleAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// AccountStatus is the lifecycle state of a user account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusVerified  AccountStatus = "VERIFIED"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusDeleted   AccountStatus = "DELETED"
)

func (s AccountStatus) String() string { return string(s) }

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusVerified, AccountStatusSuspended, AccountStatusDeleted:
		return true
	}
	return false
}

// IsDisabled reports whether the account may no longer act in the system.
func (s AccountStatus) IsDisabled() bool {
	return s == AccountStatusSuspended || s == AccountStatusDeleted
}

// RemovesActivity reports whether entering this status drops the user's
// participation, engagement and notification rows.
func (s AccountStatus) RemovesActivity() bool {
	return s.IsDisabled()
}

var accountTransitions = map[AccountStatus][]AccountStatus{
	AccountStatusActive:    {AccountStatusVerified, AccountStatusSuspended, AccountStatusDeleted},
	AccountStatusVerified:  {AccountStatusSuspended, AccountStatusDeleted},
	AccountStatusSuspended: {AccountStatusActive, AccountStatusVerified, AccountStatusDeleted},
	AccountStatusDeleted:   nil,
}

// CanTransitionTo reports whether the account may move from s to next.
// Staying in the same status is not a transition and returns false.
func (s AccountStatus) CanTransitionTo(next AccountStatus) bool {
	for _, allowed := range accountTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// User is the identity root. Role is fixed at creation.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	Status       AccountStatus
	LoginHistory []time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins the name parts.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// LastLogin returns the most recent login, or nil if the user never logged in.
func (u *User) LastLogin() *time.Time {
	if len(u.LoginHistory) == 0 {
		return nil
	}
	last := u.LoginHistory[len(u.LoginHistory)-1]
	return &last
}
