package models

import (
	"time"
)

// Role defines the user role stored on the 'users' table.
type Role string

const (
	RoleParent           Role = "Parent"
	RoleDriver           Role = "Driver"
	RoleBusAssistant     Role = "Bus Assistant"
	RoleTransportManager Role = "Transport Manager"
	RoleSchoolAdmin      Role = "School Admin"
)

// RegisterableRoles are the roles accepted by self-registration.
// School Admin accounts are seeded, never self-registered.
var RegisterableRoles = []Role{
	RoleParent,
	RoleDriver,
	RoleBusAssistant,
	RoleTransportManager,
}

// RequiresNumberPlate reports whether the role must have a vehicle assigned.
func (r Role) RequiresNumberPlate() bool {
	return r == RoleDriver || r == RoleBusAssistant
}

// IsRegisterable reports whether the role can be chosen at registration.
func (r Role) IsRegisterable() bool {
	for _, role := range RegisterableRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User defines the user model based on the 'users' table.
type User struct {
	ID          int64     `json:"id" db:"id"`
	FirstName   string    `json:"firstName" db:"first_name"`
	LastName    string    `json:"lastName" db:"last_name"`
	Email       string    `json:"email" db:"email"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
	NumberPlate *string   `json:"numberPlate,omitempty" db:"number_plate"` // nullable, set for Driver/Bus Assistant
	Role        Role      `json:"role" db:"role"`
	Password    string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// AssignedPlate returns the user's plate or "" when none is assigned.
func (u *User) AssignedPlate() string {
	if u.NumberPlate == nil {
		return ""
	}
	return *u.NumberPlate
}
