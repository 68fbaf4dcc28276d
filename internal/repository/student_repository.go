package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campuskit/attendance-api/internal/models"
)

// uniqueViolation is the Postgres error code for unique-constraint hits.
const uniqueViolation = "23505"

// ErrUniqueViolation marks unique-constraint collisions surfaced from the
// store, so services can map them to a DUPLICATE result.
var ErrUniqueViolation = fmt.Errorf("unique constraint violation")

// StudentRepository persists student rows.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student. Enrollment number collisions surface as
// ErrUniqueViolation.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const query = `INSERT INTO students
	(id, user_id, enrollment_no, department_id, semester_id, admission_year, current_year, created_at, updated_at)
	VALUES (:id, :user_id, :enrollment_no, :department_id, :semester_id, :admission_year, :current_year, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return fmt.Errorf("create student %s: %w", student.EnrollmentNo, ErrUniqueViolation)
		}
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// GetByID fetches a student including soft-deleted rows; callers decide
// how a deleted student is treated.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, user_id, enrollment_no, department_id, semester_id, admission_year, current_year, deleted_at, created_at, updated_at
FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// UserIDs maps student ids to their owning user accounts in one query.
// Unknown ids are simply absent from the result.
func (r *StudentRepository) UserIDs(ctx context.Context, studentIDs []string) (map[string]string, error) {
	if len(studentIDs) == 0 {
		return map[string]string{}, nil
	}
	const query = `SELECT id, user_id FROM students WHERE id = ANY($1)`
	var rows []struct {
		ID     string `db:"id"`
		UserID string `db:"user_id"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(studentIDs)); err != nil {
		return nil, fmt.Errorf("map student accounts: %w", err)
	}
	accounts := make(map[string]string, len(rows))
	for _, row := range rows {
		accounts[row.ID] = row.UserID
	}
	return accounts, nil
}

// Roster lists active students of a semester/department cohort, used to
// build the input list for a marking session.
func (r *StudentRepository) Roster(ctx context.Context, semesterID, departmentID string) ([]models.RosterEntry, error) {
	const query = `SELECT s.id, s.enrollment_no, u.full_name
FROM students s
JOIN users u ON u.id = s.user_id
WHERE s.semester_id = $1 AND s.department_id = $2 AND s.deleted_at IS NULL
ORDER BY s.enrollment_no`
	var roster []models.RosterEntry
	if err := r.db.SelectContext(ctx, &roster, query, semesterID, departmentID); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return roster, nil
}
