package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmwangi/schooltransit/internal/app/models"
	"github.com/dmwangi/schooltransit/internal/db"
	"github.com/dmwangi/schooltransit/internal/pkg/apperrors"
)

// IStudentRepository defines the interface for student-related database operations
type IStudentRepository interface {
	CreateAdmission(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	ListAll(ctx context.Context) ([]*models.Student, error)
	ListRecentContactChanges(ctx context.Context, limit int) ([]*models.ParentContactChange, error)
	AdmissionNumberExists(ctx context.Context, admissionNumber string, excludeID int64) (bool, error)
	UpdateParentContact(ctx context.Context, studentID int64, newContact string, changedByUserID int64) (*models.Student, error)
	Withdraw(ctx context.Context, studentID int64, withdrawalDate string, reason *string) error
	UpdateMasterData(ctx context.Context, studentID int64, fields map[string]string) error
}

// studentMasterDataColumns maps updatable master data fields to their columns.
// Anything outside this map is silently ignored by UpdateMasterData.
var studentMasterDataColumns = map[string]string{
	"admissionNumber": "admission_number",
	"firstName":       "first_name",
	"lastName":        "last_name",
	"className":       "class_name",
	"grade":           "grade",
	"admissionDate":   "admission_date",
}

// StudentRepository handles student database operations. It holds the
// wrapping PostgresDB rather than the bare pool because the parent
// contact update runs inside a row-locking transaction.
type StudentRepository struct {
	db *db.PostgresDB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.PostgresDB) *StudentRepository {
	return &StudentRepository{
		db: database,
	}
}

const studentColumns = `id, admission_number, first_name, last_name, class_name, grade, parent_contact,
		to_char(admission_date, 'YYYY-MM-DD'), status,
		to_char(withdrawal_date, 'YYYY-MM-DD'), withdrawal_reason, created_at, updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID, &student.AdmissionNumber, &student.FirstName, &student.LastName,
		&student.ClassName, &student.Grade, &student.ParentContact, &student.AdmissionDate,
		&student.Status, &student.WithdrawalDate, &student.WithdrawalReason,
		&student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student: %w", err)
	}
	return student, nil
}

// CreateAdmission inserts a new active student and returns its id.
func (r *StudentRepository) CreateAdmission(ctx context.Context, student *models.Student) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO students (admission_number, first_name, last_name, class_name, grade, parent_contact, admission_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		student.AdmissionNumber, student.FirstName, student.LastName, student.ClassName,
		student.Grade, student.ParentContact, student.AdmissionDate, models.StudentActive).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating student admission: %w", err)
	}

	return id, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	row := r.db.Pool.QueryRow(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE id = $1`,
		id)

	return scanStudent(row)
}

// ListAll returns every student, most recent admission first.
func (r *StudentRepository) ListAll(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+studentColumns+`
		FROM students
		ORDER BY admission_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}

	return students, nil
}

// ListRecentContactChanges returns the newest parent contact changes,
// joined with the student name, capped at limit.
func (r *StudentRepository) ListRecentContactChanges(ctx context.Context, limit int) ([]*models.ParentContactChange, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT c.id, c.student_id, s.first_name || ' ' || s.last_name,
		       c.previous_contact, c.new_contact, c.changed_by_user_id, c.changed_at
		FROM student_parent_contact_changes c
		JOIN students s ON s.id = c.student_id
		ORDER BY c.changed_at DESC, c.id DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("error listing parent contact changes: %w", err)
	}
	defer rows.Close()

	changes := []*models.ParentContactChange{}
	for rows.Next() {
		change := &models.ParentContactChange{}
		err := rows.Scan(
			&change.ID, &change.StudentID, &change.StudentName,
			&change.PreviousContact, &change.NewContact, &change.ChangedByUserID, &change.ChangedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning parent contact change: %w", err)
		}
		changes = append(changes, change)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parent contact changes: %w", err)
	}

	return changes, nil
}

// AdmissionNumberExists checks whether the admission number is already
// taken by a student other than excludeID. Pass excludeID 0 for inserts.
func (r *StudentRepository) AdmissionNumberExists(ctx context.Context, admissionNumber string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE admission_number = $1 AND id <> $2)`,
		admissionNumber, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking admission number: %w", err)
	}

	return exists, nil
}

// UpdateParentContact changes the student's parent contact inside a
// transaction that locks the row, and records the change in the audit
// table. Returns ErrParentContactUnchanged when the new value equals
// the current one.
func (r *StudentRepository) UpdateParentContact(ctx context.Context, studentID int64, newContact string, changedByUserID int64) (*models.Student, error) {
	var updated *models.Student

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		updated, err = r.updateParentContactTx(ctx, tx, studentID, newContact, changedByUserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// updateParentContactTx runs the lock/compare/update/audit/re-read sequence
// on tx. The caller owns commit and rollback.
func (r *StudentRepository) updateParentContactTx(ctx context.Context, tx pgx.Tx, studentID int64, newContact string, changedByUserID int64) (*models.Student, error) {
	var currentContact string
	err := tx.QueryRow(ctx, `
		SELECT parent_contact
		FROM students
		WHERE id = $1
		FOR UPDATE`,
		studentID).Scan(&currentContact)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error locking student row: %w", err)
	}

	if currentContact == newContact {
		return nil, apperrors.ErrParentContactUnchanged
	}

	_, err = tx.Exec(ctx, `
		UPDATE students
		SET parent_contact = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`,
		newContact, studentID)
	if err != nil {
		return nil, fmt.Errorf("error updating parent contact: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO student_parent_contact_changes (student_id, previous_contact, new_contact, changed_by_user_id)
		VALUES ($1, $2, $3, $4)`,
		studentID, currentContact, newContact, changedByUserID)
	if err != nil {
		return nil, fmt.Errorf("error recording parent contact change: %w", err)
	}

	return scanStudent(tx.QueryRow(ctx, `
		SELECT `+studentColumns+`
		FROM students
		WHERE id = $1`,
		studentID))
}

// Withdraw marks the student as withdrawn with the given date and reason.
// A nil reason is stored as NULL.
func (r *StudentRepository) Withdraw(ctx context.Context, studentID int64, withdrawalDate string, reason *string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE students
		SET status = $1, withdrawal_date = $2, withdrawal_reason = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4`,
		models.StudentWithdrawn, withdrawalDate, reason, studentID)
	if err != nil {
		return fmt.Errorf("error withdrawing student: %w", err)
	}

	return nil
}

// UpdateMasterData applies the provided master data fields. Field names
// are the JSON names; unknown fields are ignored.
func (r *StudentRepository) UpdateMasterData(ctx context.Context, studentID int64, fields map[string]string) error {
	setClauses := []string{}
	args := []interface{}{}

	for field, value := range fields {
		column, ok := studentMasterDataColumns[field]
		if !ok {
			continue
		}
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if len(setClauses) == 0 {
		return apperrors.ErrNoMasterDataFields
	}

	args = append(args, studentID)
	query := fmt.Sprintf(`
		UPDATE students
		SET %s, updated_at = CURRENT_TIMESTAMP
		WHERE id = $%d`,
		strings.Join(setClauses, ", "), len(args))

	_, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating student master data: %w", err)
	}

	return nil
}
