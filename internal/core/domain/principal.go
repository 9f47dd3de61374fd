package domain

import "time"

// Role is the closed set of portal roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDoctor    Role = "doctor"
	RoleNurse     Role = "nurse"
	RoleRegistrar Role = "registrar"
	RolePatient   Role = "patient"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleNurse, RoleRegistrar, RolePatient:
		return true
	}
	return false
}

// RoleSet is a set over Role, used for per-view access requirements.
type RoleSet map[Role]struct{}

// Roles builds a RoleSet from the given roles.
func Roles(rs ...Role) RoleSet {
	set := make(RoleSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether r is a member of the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Principal is an authenticated user as seen by the rest of the system:
// identity, role, and clinic scope. A nil ClinicID means no clinic
// restriction (admins only).
type Principal struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
	ClinicID *int64 `json:"clinic_id"`
	Active   bool   `json:"is_active"`
}

// User is the stored account record behind a Principal.
type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ClinicID     *int64    `json:"clinic_id"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal projects the account into its session representation.
func (u *User) Principal() Principal {
	return Principal{
		ID:       u.ID,
		FullName: u.FullName,
		Phone:    u.Phone,
		Role:     u.Role,
		ClinicID: u.ClinicID,
		Active:   u.Active,
	}
}
