package models

import (
	"time"
)

// StudentStatus is the lifecycle state of a student record.
// The only transition is active -> withdrawn and it is one-way.
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentWithdrawn StudentStatus = "withdrawn"
)

// Student defines the student model based on the 'students' table.
// Dates are kept as YYYY-MM-DD strings, matching the API wire format.
type Student struct {
	ID               int64         `json:"id" db:"id"`
	AdmissionNumber  string        `json:"admissionNumber" db:"admission_number"`
	FirstName        string        `json:"firstName" db:"first_name"`
	LastName         string        `json:"lastName" db:"last_name"`
	ClassName        string        `json:"className" db:"class_name"`
	Grade            string        `json:"grade" db:"grade"`
	ParentContact    string        `json:"parentContact" db:"parent_contact"`
	AdmissionDate    string        `json:"admissionDate" db:"admission_date"`
	Status           StudentStatus `json:"status" db:"status"`
	WithdrawalDate   *string       `json:"withdrawalDate" db:"withdrawal_date"`
	WithdrawalReason *string       `json:"withdrawalReason" db:"withdrawal_reason"`
	CreatedAt        time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" db:"updated_at"`
}

// ParentContactChange is one append-only audit row from the
// 'student_parent_contact_changes' table, joined with the student name.
type ParentContactChange struct {
	ID              int64     `json:"id" db:"id"`
	StudentID       int64     `json:"studentId" db:"student_id"`
	StudentName     string    `json:"studentName"`
	PreviousContact string    `json:"previousContact" db:"previous_contact"`
	NewContact      string    `json:"newContact" db:"new_contact"`
	ChangedByUserID int64     `json:"changedByUserId" db:"changed_by_user_id"`
	ChangedAt       time.Time `json:"changedAt" db:"changed_at"`
}
