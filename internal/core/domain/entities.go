package domain

import (
	"strconv"
)

// Role represents user role in the system
type Role string

const (
	RoleStudent                 Role = "STUDENT"
	RoleEmployee                Role = "EMPLOYEE"
	RoleAdministrator           Role = "ADMINISTRATOR"
	RoleUniversityAdministrator Role = "UNIVERSITY_ADMINISTRATOR"
)

// AllRoles returns every role known to the system
func AllRoles() []Role {
	return []Role{RoleStudent, RoleEmployee, RoleAdministrator, RoleUniversityAdministrator}
}

// ParseRole converts a raw claim or column value into a Role
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles() {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Authority prefixes granted on top of the role
const (
	StudentAuthorityPrefix    = "STUDENT_"
	UniversityAuthorityPrefix = "UNIVERSITY_"
)

// StudentAuthority builds the ownership authority for a student id
func StudentAuthority(id uint) string {
	return StudentAuthorityPrefix + strconv.FormatUint(uint64(id), 10)
}

// UniversityAuthority builds the ownership authority for a university id
func UniversityAuthority(id uint) string {
	return UniversityAuthorityPrefix + strconv.FormatUint(uint64(id), 10)
}

// Principal is the authenticated caller for the duration of one request.
// It is built once by the authentication resolver and never mutated.
type Principal struct {
	UserID       uint
	Email        string
	Role         Role
	UniversityID *uint
	StudentID    *uint
	EmployeeID   *uint
}

// Authorities returns the role plus every ownership authority the principal holds
func (p *Principal) Authorities() []string {
	authorities := []string{string(p.Role)}
	if p.Role == RoleStudent && p.StudentID != nil {
		authorities = append(authorities, StudentAuthority(*p.StudentID))
	}
	if p.UniversityID != nil {
		authorities = append(authorities, UniversityAuthority(*p.UniversityID))
	}
	return authorities
}

// HasAuthority reports whether the principal holds the given authority
func (p *Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities() {
		if a == authority {
			return true
		}
	}
	return false
}

// Provider identifies an external identity provider
type Provider string

const (
	ProviderGoogle   Provider = "GOOGLE"
	ProviderFacebook Provider = "FACEBOOK"
)

// UserProfile is the normalized profile returned by an identity provider
type UserProfile struct {
	Email      string
	FirstName  string
	LastName   string
	PictureURL string
}

// Friendship statuses
const (
	FriendshipRequested = "REQUESTED"
	FriendshipAccepted  = "ACCEPTED"
)

// Device platforms
const (
	PlatformIOS     = "IOS"
	PlatformAndroid = "ANDROID"
)
