package dto

import (
	"github.com/dmwangi/schooltransit/internal/app/models"
)

// CreateAdmissionRequest represents a new student admission.
type CreateAdmissionRequest struct {
	AdmissionNumber string `json:"admissionNumber" binding:"required,min=1,max=50"`
	FirstName       string `json:"firstName" binding:"required,max=255"`
	LastName        string `json:"lastName" binding:"required,max=255"`
	ClassName       string `json:"className" binding:"required,max=100"`
	Grade           string `json:"grade" binding:"required,max=50"`
	ParentContact   string `json:"parentContact" binding:"required,numeric,min=9,max=20"`
	AdmissionDate   string `json:"admissionDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateParentContactRequest carries the replacement contact number.
type UpdateParentContactRequest struct {
	ParentContact string `json:"parentContact" binding:"required,numeric,min=9,max=20"`
}

// WithdrawStudentRequest marks a student as withdrawn.
type WithdrawStudentRequest struct {
	WithdrawalDate   string `json:"withdrawalDate" binding:"omitempty,datetime=2006-01-02"`
	WithdrawalReason string `json:"withdrawalReason" binding:"omitempty,max=255"`
}

// UpdateMasterDataRequest is a partial update of admission-identity fields.
// Absent, null and blank fields are ignored; at least one must survive.
type UpdateMasterDataRequest struct {
	AdmissionNumber *string `json:"admissionNumber" binding:"omitempty,max=50"`
	FirstName       *string `json:"firstName" binding:"omitempty,max=255"`
	LastName        *string `json:"lastName" binding:"omitempty,max=255"`
	ClassName       *string `json:"className" binding:"omitempty,max=100"`
	Grade           *string `json:"grade" binding:"omitempty,max=50"`
	AdmissionDate   *string `json:"admissionDate" binding:"omitempty,datetime=2006-01-02"`
}

// StudentData wraps a single student record.
type StudentData struct {
	Student *models.Student `json:"student"`
}

// DashboardSummary holds the student headcounts.
type DashboardSummary struct {
	TotalStudents     int `json:"totalStudents"`
	ActiveStudents    int `json:"activeStudents"`
	WithdrawnStudents int `json:"withdrawnStudents"`
}

// StudentDashboardData is the School Admin dashboard aggregate: all students,
// the active/withdrawn partitions, and the recent contact-change audit trail.
type StudentDashboardData struct {
	Students             []models.Student             `json:"students"`
	Admissions           []models.Student             `json:"admissions"`
	Withdrawals          []models.Student             `json:"withdrawals"`
	ParentContactChanges []models.ParentContactChange `json:"parentContactChanges"`
	Summary              DashboardSummary             `json:"summary"`
}
