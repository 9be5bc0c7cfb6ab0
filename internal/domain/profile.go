package domain

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// RoleProfile is the role-specific attribute record paired 1:1 with a User.
// The set of implementations is closed: StudentProfile, UniversityProfile,
// CompanyProfile and AdminProfile.
type RoleProfile interface {
	Role() Role
	OwnerID() uuid.UUID
	withOwner(id uuid.UUID) RoleProfile
}

// StudentProfile holds attributes of a STUDENT user.
type StudentProfile struct {
	UserID         uuid.UUID
	University     string
	Specialization string
	GraduationYear *int
	StudentNumber  *string
}

func (p StudentProfile) Role() Role         { return RoleStudent }
func (p StudentProfile) OwnerID() uuid.UUID { return p.UserID }

func (p StudentProfile) withOwner(id uuid.UUID) RoleProfile {
	p.UserID = id
	return p
}

// UniversityProfile holds attributes of a UNIVERSITY (institution) user.
type UniversityProfile struct {
	UserID          uuid.UUID
	InstitutionName string
	Website         *string
	Country         *string
}

func (p UniversityProfile) Role() Role         { return RoleUniversity }
func (p UniversityProfile) OwnerID() uuid.UUID { return p.UserID }

func (p UniversityProfile) withOwner(id uuid.UUID) RoleProfile {
	p.UserID = id
	return p
}

// CompanyProfile holds attributes of a COMPANY (organization) user.
type CompanyProfile struct {
	UserID      uuid.UUID
	CompanyName string
	Industry    string
	Website     *string
	Size        *string
}

func (p CompanyProfile) Role() Role         { return RoleCompany }
func (p CompanyProfile) OwnerID() uuid.UUID { return p.UserID }

func (p CompanyProfile) withOwner(id uuid.UUID) RoleProfile {
	p.UserID = id
	return p
}

// AdminProfile holds attributes of an ADMIN user.
type AdminProfile struct {
	UserID      uuid.UUID
	Department  *string
	Permissions []string
}

func (p AdminProfile) Role() Role         { return RoleAdmin }
func (p AdminProfile) OwnerID() uuid.UUID { return p.UserID }

func (p AdminProfile) withOwner(id uuid.UUID) RoleProfile {
	p.UserID = id
	p.Permissions = slices.Clone(p.Permissions)
	return p
}

// Account is a user together with its role profile. The only constructor is
// NewAccount, so the role tag and the profile payload cannot disagree.
type Account struct {
	User    User
	Profile RoleProfile
}

// NewAccount binds profile to user: the user's role is taken from the
// profile and the profile's owner id is set to the user id.
func NewAccount(user User, profile RoleProfile) (Account, error) {
	if profile == nil {
		return Account{}, fmt.Errorf("account %s: missing role profile: %w", user.ID, ErrInvalidRoleAttributes)
	}
	if user.Role != "" && user.Role != profile.Role() {
		return Account{}, fmt.Errorf("account %s: role %s does not match %s profile: %w",
			user.ID, user.Role, profile.Role(), ErrInvalidRoleAttributes)
	}
	user.Role = profile.Role()
	return Account{User: user, Profile: profile.withOwner(user.ID)}, nil
}

// Student returns the profile as a StudentProfile.
func (a Account) Student() (StudentProfile, bool) {
	p, ok := a.Profile.(StudentProfile)
	return p, ok
}

// University returns the profile as a UniversityProfile.
func (a Account) University() (UniversityProfile, bool) {
	p, ok := a.Profile.(UniversityProfile)
	return p, ok
}

// Company returns the profile as a CompanyProfile.
func (a Account) Company() (CompanyProfile, bool) {
	p, ok := a.Profile.(CompanyProfile)
	return p, ok
}

// Admin returns the profile as an AdminProfile.
func (a Account) Admin() (AdminProfile, bool) {
	p, ok := a.Profile.(AdminProfile)
	return p, ok
}
