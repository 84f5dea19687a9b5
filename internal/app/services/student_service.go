package services

import (
	"context"
	"strings"

	"github.com/dmwangi/schooltransit/internal/app/models"
	"github.com/dmwangi/schooltransit/internal/app/models/dto"
	"github.com/dmwangi/schooltransit/internal/app/repositories"
	"github.com/dmwangi/schooltransit/internal/pkg/apperrors"
	"github.com/dmwangi/schooltransit/internal/pkg/helpers"
)

// contactChangeLimit caps the audit trail returned with the dashboard.
const contactChangeLimit = 100

// IStudentService defines the interface for student lifecycle operations
type IStudentService interface {
	DashboardData(ctx context.Context) (*dto.StudentDashboardData, error)
	CreateAdmission(ctx context.Context, req *dto.CreateAdmissionRequest) (*models.Student, error)
	UpdateParentContact(ctx context.Context, studentID int64, req *dto.UpdateParentContactRequest, changedByUserID int64) (*models.Student, error)
	Withdraw(ctx context.Context, studentID int64, req *dto.WithdrawStudentRequest) (*models.Student, error)
	UpdateMasterData(ctx context.Context, studentID int64, req *dto.UpdateMasterDataRequest) (*models.Student, error)
}

// StudentService handles the student lifecycle: admission, parent contact
// changes, withdrawal and master data corrections.
type StudentService struct {
	studentRepo repositories.IStudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
	}
}

// DashboardData assembles the admin dashboard: the full roster, its
// active/withdrawn partitions, the recent contact changes and headcounts.
func (s *StudentService) DashboardData(ctx context.Context) (*dto.StudentDashboardData, error) {
	students, err := s.studentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	changes, err := s.studentRepo.ListRecentContactChanges(ctx, contactChangeLimit)
	if err != nil {
		return nil, err
	}

	data := &dto.StudentDashboardData{
		Students:             make([]models.Student, 0, len(students)),
		Admissions:           []models.Student{},
		Withdrawals:          []models.Student{},
		ParentContactChanges: make([]models.ParentContactChange, 0, len(changes)),
	}

	for _, student := range students {
		data.Students = append(data.Students, *student)
		switch student.Status {
		case models.StudentActive:
			data.Admissions = append(data.Admissions, *student)
		case models.StudentWithdrawn:
			data.Withdrawals = append(data.Withdrawals, *student)
		}
	}
	for _, change := range changes {
		data.ParentContactChanges = append(data.ParentContactChanges, *change)
	}

	data.Summary = dto.DashboardSummary{
		TotalStudents:     len(data.Students),
		ActiveStudents:    len(data.Admissions),
		WithdrawnStudents: len(data.Withdrawals),
	}

	return data, nil
}

// CreateAdmission admits a new student. The admission date defaults to today
// when omitted.
func (s *StudentService) CreateAdmission(ctx context.Context, req *dto.CreateAdmissionRequest) (*models.Student, error) {
	admissionNumber := strings.ToUpper(strings.TrimSpace(req.AdmissionNumber))

	admissionDate := strings.TrimSpace(req.AdmissionDate)
	if admissionDate == "" {
		admissionDate = helpers.TodayISODate()
	}

	exists, err := s.studentRepo.AdmissionNumberExists(ctx, admissionNumber, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAdmissionNumberExists
	}

	student := &models.Student{
		AdmissionNumber: admissionNumber,
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		ClassName:       strings.TrimSpace(req.ClassName),
		Grade:           strings.TrimSpace(req.Grade),
		ParentContact:   strings.TrimSpace(req.ParentContact),
		AdmissionDate:   admissionDate,
	}

	id, err := s.studentRepo.CreateAdmission(ctx, student)
	if err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, id)
}

// UpdateParentContact replaces a student's parent contact and records the
// change. The value must actually differ from the current one.
func (s *StudentService) UpdateParentContact(ctx context.Context, studentID int64, req *dto.UpdateParentContactRequest, changedByUserID int64) (*models.Student, error) {
	newContact := strings.TrimSpace(req.ParentContact)
	return s.studentRepo.UpdateParentContact(ctx, studentID, newContact, changedByUserID)
}

// Withdraw marks a student as withdrawn. The date defaults to today; a blank
// reason is stored as absent. Withdrawal is one-way.
func (s *StudentService) Withdraw(ctx context.Context, studentID int64, req *dto.WithdrawStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Status == models.StudentWithdrawn {
		return nil, apperrors.ErrStudentAlreadyWithdrawn
	}

	withdrawalDate := strings.TrimSpace(req.WithdrawalDate)
	if withdrawalDate == "" {
		withdrawalDate = helpers.TodayISODate()
	}

	var reason *string
	if trimmed := strings.TrimSpace(req.WithdrawalReason); trimmed != "" {
		reason = &trimmed
	}

	if err := s.studentRepo.Withdraw(ctx, studentID, withdrawalDate, reason); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, studentID)
}

// UpdateMasterData applies a partial correction of admission identity fields.
// Absent, null and blank values are skipped; at least one real value must
// remain or the update is rejected.
func (s *StudentService) UpdateMasterData(ctx context.Context, studentID int64, req *dto.UpdateMasterDataRequest) (*models.Student, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	fields := map[string]string{}
	put := func(name string, value *string) {
		if value == nil {
			return
		}
		trimmed := strings.TrimSpace(*value)
		if trimmed == "" {
			return
		}
		if name == "admissionNumber" {
			trimmed = strings.ToUpper(trimmed)
		}
		fields[name] = trimmed
	}

	put("admissionNumber", req.AdmissionNumber)
	put("firstName", req.FirstName)
	put("lastName", req.LastName)
	put("className", req.ClassName)
	put("grade", req.Grade)
	put("admissionDate", req.AdmissionDate)

	if len(fields) == 0 {
		return nil, apperrors.ErrNoMasterDataFields
	}

	if admissionNumber, ok := fields["admissionNumber"]; ok {
		exists, err := s.studentRepo.AdmissionNumberExists(ctx, admissionNumber, studentID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrAdmissionNumberExists
		}
	}

	if err := s.studentRepo.UpdateMasterData(ctx, studentID, fields); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, studentID)
}
