package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmwangi/schooltransit/internal/app/models"
	"github.com/dmwangi/schooltransit/internal/app/models/dto"
	"github.com/dmwangi/schooltransit/internal/pkg/apperrors"
	"github.com/dmwangi/schooltransit/internal/pkg/helpers"
)

// stubStudentRepo is an in-memory IStudentRepository.
type stubStudentRepo struct {
	students map[int64]*models.Student
	changes  []*models.ParentContactChange
	nextID   int64
}

func newStubStudentRepo() *stubStudentRepo {
	return &stubStudentRepo{students: map[int64]*models.Student{}, nextID: 1}
}

func (r *stubStudentRepo) CreateAdmission(_ context.Context, student *models.Student) (int64, error) {
	id := r.nextID
	r.nextID++
	stored := *student
	stored.ID = id
	stored.Status = models.StudentActive
	r.students[id] = &stored
	return id, nil
}

func (r *stubStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (r *stubStudentRepo) ListAll(_ context.Context) ([]*models.Student, error) {
	students := make([]*models.Student, 0, len(r.students))
	for id := int64(1); id < r.nextID; id++ {
		if student, ok := r.students[id]; ok {
			copied := *student
			students = append(students, &copied)
		}
	}
	return students, nil
}

func (r *stubStudentRepo) ListRecentContactChanges(_ context.Context, limit int) ([]*models.ParentContactChange, error) {
	if len(r.changes) > limit {
		return r.changes[:limit], nil
	}
	return r.changes, nil
}

func (r *stubStudentRepo) AdmissionNumberExists(_ context.Context, admissionNumber string, excludeID int64) (bool, error) {
	for _, student := range r.students {
		if student.AdmissionNumber == admissionNumber && student.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubStudentRepo) UpdateParentContact(_ context.Context, studentID int64, newContact string, changedByUserID int64) (*models.Student, error) {
	student, ok := r.students[studentID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	if student.ParentContact == newContact {
		return nil, apperrors.ErrParentContactUnchanged
	}
	r.changes = append(r.changes, &models.ParentContactChange{
		StudentID:       studentID,
		PreviousContact: student.ParentContact,
		NewContact:      newContact,
		ChangedByUserID: changedByUserID,
	})
	student.ParentContact = newContact
	copied := *student
	return &copied, nil
}

func (r *stubStudentRepo) Withdraw(_ context.Context, studentID int64, withdrawalDate string, reason *string) error {
	student, ok := r.students[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	student.Status = models.StudentWithdrawn
	student.WithdrawalDate = &withdrawalDate
	student.WithdrawalReason = reason
	return nil
}

func (r *stubStudentRepo) UpdateMasterData(_ context.Context, studentID int64, fields map[string]string) error {
	student, ok := r.students[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	for field, value := range fields {
		switch field {
		case "admissionNumber":
			student.AdmissionNumber = value
		case "firstName":
			student.FirstName = value
		case "lastName":
			student.LastName = value
		case "className":
			student.ClassName = value
		case "grade":
			student.Grade = value
		case "admissionDate":
			student.AdmissionDate = value
		}
	}
	return nil
}

func admissionRequest() *dto.CreateAdmissionRequest {
	return &dto.CreateAdmissionRequest{
		AdmissionNumber: "adm-001",
		FirstName:       "Brian",
		LastName:        "Otieno",
		ClassName:       "4 Blue",
		Grade:           "Grade 4",
		ParentContact:   "254711000111",
	}
}

func TestCreateAdmissionDefaultsAndNormalizes(t *testing.T) {
	svc := NewStudentService(newStubStudentRepo())

	student, err := svc.CreateAdmission(context.Background(), admissionRequest())
	if err != nil {
		t.Fatalf("CreateAdmission: %v", err)
	}
	if student.AdmissionNumber != "ADM-001" {
		t.Errorf("admissionNumber = %q, want ADM-001", student.AdmissionNumber)
	}
	if student.AdmissionDate != helpers.TodayISODate() {
		t.Errorf("admissionDate = %q, want today", student.AdmissionDate)
	}
	if student.Status != models.StudentActive {
		t.Errorf("status = %q, want active", student.Status)
	}
}

func TestCreateAdmissionRejectsDuplicateNumber(t *testing.T) {
	svc := NewStudentService(newStubStudentRepo())
	ctx := context.Background()

	if _, err := svc.CreateAdmission(ctx, admissionRequest()); err != nil {
		t.Fatalf("first CreateAdmission: %v", err)
	}

	dup := admissionRequest()
	dup.AdmissionNumber = " adm-001 " // same number after normalization
	if _, err := svc.CreateAdmission(ctx, dup); !errors.Is(err, apperrors.ErrAdmissionNumberExists) {
		t.Errorf("err = %v, want ErrAdmissionNumberExists", err)
	}
}

func TestDashboardDataPartition(t *testing.T) {
	repo := newStubStudentRepo()
	svc := NewStudentService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		req := admissionRequest()
		req.AdmissionNumber = req.AdmissionNumber + string(rune('A'+i))
		if _, err := svc.CreateAdmission(ctx, req); err != nil {
			t.Fatalf("CreateAdmission: %v", err)
		}
	}
	if _, err := svc.Withdraw(ctx, 2, &dto.WithdrawStudentRequest{WithdrawalReason: "Relocated"}); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}

	data, err := svc.DashboardData(ctx)
	if err != nil {
		t.Fatalf("DashboardData: %v", err)
	}
	if data.Summary.TotalStudents != 3 || data.Summary.ActiveStudents != 2 || data.Summary.WithdrawnStudents != 1 {
		t.Errorf("summary = %+v", data.Summary)
	}
	if len(data.Students) != 3 || len(data.Admissions) != 2 || len(data.Withdrawals) != 1 {
		t.Errorf("partitions = %d/%d/%d", len(data.Students), len(data.Admissions), len(data.Withdrawals))
	}
	if data.Withdrawals[0].ID != 2 {
		t.Errorf("withdrawn id = %d, want 2", data.Withdrawals[0].ID)
	}
}

func TestUpdateParentContactRecordsChange(t *testing.T) {
	repo := newStubStudentRepo()
	svc := NewStudentService(repo)
	ctx := context.Background()

	if _, err := svc.CreateAdmission(ctx, admissionRequest()); err != nil {
		t.Fatalf("CreateAdmission: %v", err)
	}

	student, err := svc.UpdateParentContact(ctx, 1, &dto.UpdateParentContactRequest{ParentContact: "254722000222"}, 7)
	if err != nil {
		t.Fatalf("UpdateParentContact: %v", err)
	}
	if student.ParentContact != "254722000222" {
		t.Errorf("parentContact = %q", student.ParentContact)
	}
	if len(repo.changes) != 1 {
		t.Fatalf("audit rows = %d, want 1", len(repo.changes))
	}
	change := repo.changes[0]
	if change.PreviousContact != "254711000111" || change.NewContact != "254722000222" || change.ChangedByUserID != 7 {
		t.Errorf("audit row = %+v", change)
	}
}

func TestUpdateParentContactRejectsUnchangedValue(t *testing.T) {
	svc := NewStudentService(newStubStudentRepo())
	ctx := context.Background()

	if _, err := svc.CreateAdmission(ctx, admissionRequest()); err != nil {
		t.Fatalf("CreateAdmission: %v", err)
	}

	_, err := svc.UpdateParentContact(ctx, 1, &dto.UpdateParentContactRequest{ParentContact: " 254711000111 "}, 7)
	if !errors.Is(err, apperrors.ErrParentContactUnchanged) {
		t.Errorf("err = %v, want ErrParentContactUnchanged", err)
	}
}

func TestWithdrawIsOneWay(t *testing.T) {
	svc := NewStudentService(newStubStudentRepo())
	ctx := context.Background()

	if _, err := svc.CreateAdmission(ctx, admissionRequest()); err != nil {
		t.Fatalf("CreateAdmission: %v", err)
	}

	student, err := svc.Withdraw(ctx, 1, &dto.WithdrawStudentRequest{})
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if student.Status != models.StudentWithdrawn {
		t.Errorf("status = %q, want withdrawn", student.Status)
	}
	if student.WithdrawalDate == nil || *student.WithdrawalDate != helpers.TodayISODate() {
		t.Errorf("withdrawalDate = %v, want today", student.WithdrawalDate)
	}
	if student.WithdrawalReason != nil {
		t.Errorf("blank reason should be stored as absent, got %v", *student.WithdrawalReason)
	}

	_, err = svc.Withdraw(ctx, 1, &dto.WithdrawStudentRequest{})
	if !errors.Is(err, apperrors.ErrStudentAlreadyWithdrawn) {
		t.Errorf("second withdraw: err = %v, want ErrStudentAlreadyWithdrawn", err)
	}
}

func TestWithdrawUnknownStudent(t *testing.T) {
	svc := NewStudentService(newStubStudentRepo())

	_, err := svc.Withdraw(context.Background(), 99, &dto.WithdrawStudentRequest{})
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("err = %v, want ErrStudentNotFound", err)
	}
}

func strPtr(s string) *string { return &s }

func TestUpdateMasterDataRequiresAField(t *testing.T) {
	svc := NewStudentService(newStubStudentRepo())
	ctx := context.Background()

	if _, err := svc.CreateAdmission(ctx, admissionRequest()); err != nil {
		t.Fatalf("CreateAdmission: %v", err)
	}

	// Empty and blank-only payloads are equivalent.
	for _, req := range []*dto.UpdateMasterDataRequest{
		{},
		{FirstName: strPtr("   "), Grade: strPtr("")},
	} {
		if _, err := svc.UpdateMasterData(ctx, 1, req); !errors.Is(err, apperrors.ErrNoMasterDataFields) {
			t.Errorf("err = %v, want ErrNoMasterDataFields", err)
		}
	}
}

func TestUpdateMasterDataPartialUpdate(t *testing.T) {
	repo := newStubStudentRepo()
	svc := NewStudentService(repo)
	ctx := context.Background()

	if _, err := svc.CreateAdmission(ctx, admissionRequest()); err != nil {
		t.Fatalf("CreateAdmission: %v", err)
	}

	student, err := svc.UpdateMasterData(ctx, 1, &dto.UpdateMasterDataRequest{Grade: strPtr("Grade 5")})
	if err != nil {
		t.Fatalf("UpdateMasterData: %v", err)
	}
	if student.Grade != "Grade 5" {
		t.Errorf("grade = %q, want Grade 5", student.Grade)
	}
	if student.FirstName != "Brian" || student.AdmissionNumber != "ADM-001" {
		t.Errorf("untouched fields changed: %+v", student)
	}
}

func TestUpdateMasterDataRejectsDuplicateAdmissionNumber(t *testing.T) {
	svc := NewStudentService(newStubStudentRepo())
	ctx := context.Background()

	if _, err := svc.CreateAdmission(ctx, admissionRequest()); err != nil {
		t.Fatalf("CreateAdmission: %v", err)
	}
	second := admissionRequest()
	second.AdmissionNumber = "ADM-002"
	if _, err := svc.CreateAdmission(ctx, second); err != nil {
		t.Fatalf("CreateAdmission: %v", err)
	}

	_, err := svc.UpdateMasterData(ctx, 2, &dto.UpdateMasterDataRequest{AdmissionNumber: strPtr("adm-001")})
	if !errors.Is(err, apperrors.ErrAdmissionNumberExists) {
		t.Errorf("err = %v, want ErrAdmissionNumberExists", err)
	}

	// Keeping your own number is allowed.
	if _, err := svc.UpdateMasterData(ctx, 2, &dto.UpdateMasterDataRequest{AdmissionNumber: strPtr("ADM-002"), Grade: strPtr("Grade 6")}); err != nil {
		t.Errorf("self number: %v", err)
	}
}
