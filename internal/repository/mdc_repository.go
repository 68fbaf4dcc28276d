package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campuskit/attendance-api/internal/models"
)

// MDCRepository persists multi-disciplinary elective courses. Rosters live
// on the course row as a text[] set, deliberately denormalized.
type MDCRepository struct {
	db *sqlx.DB
}

// NewMDCRepository constructs the repository.
func NewMDCRepository(db *sqlx.DB) *MDCRepository {
	return &MDCRepository{db: db}
}

// Create inserts a new MDC course with an empty roster.
func (r *MDCRepository) Create(ctx context.Context, course *models.MDCCourse) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if course.StudentIDs == nil {
		course.StudentIDs = pq.StringArray{}
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	const query = `INSERT INTO mdc_courses
	(id, course_name, home_department_id, mdc_department_id, year, semester, student_ids, faculty_id, created_at, updated_at)
	VALUES (:id, :course_name, :home_department_id, :mdc_department_id, :year, :semester, :student_ids, :faculty_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create mdc course: %w", err)
	}
	return nil
}

// GetByID fetches one course including its roster.
func (r *MDCRepository) GetByID(ctx context.Context, id string) (*models.MDCCourse, error) {
	const query = `SELECT id, course_name, home_department_id, mdc_department_id, year, semester, student_ids, faculty_id, created_at, updated_at
FROM mdc_courses WHERE id = $1`
	var course models.MDCCourse
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// EligibleCourses lists the elective catalog for a home department. A
// course offered by the student's own department is never eligible.
func (r *MDCRepository) EligibleCourses(ctx context.Context, homeDepartmentID string) ([]models.MDCCourse, error) {
	const query = `SELECT id, course_name, home_department_id, mdc_department_id, year, semester, student_ids, faculty_id, created_at, updated_at
FROM mdc_courses
WHERE home_department_id = $1 AND mdc_department_id <> $1
ORDER BY course_name`
	var courses []models.MDCCourse
	if err := r.db.SelectContext(ctx, &courses, query, homeDepartmentID); err != nil {
		return nil, fmt.Errorf("list eligible mdc courses: %w", err)
	}
	return courses, nil
}

// AddStudent appends the student id to the roster set. The guard keeps
// the array duplicate-free; sql.ErrNoRows means either the course is
// missing or the student is already on the roster, and the caller
// disambiguates.
func (r *MDCRepository) AddStudent(ctx context.Context, courseID, studentID string) error {
	const query = `UPDATE mdc_courses
SET student_ids = array_append(student_ids, $2), updated_at = $3
WHERE id = $1 AND NOT ($2 = ANY(student_ids))`
	result, err := r.db.ExecContext(ctx, query, courseID, studentID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add mdc student: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check mdc add: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RemoveStudent drops the student id from the roster set. Removing an
// absent id is a no-op as long as the course exists.
func (r *MDCRepository) RemoveStudent(ctx context.Context, courseID, studentID string) error {
	const query = `UPDATE mdc_courses
SET student_ids = array_remove(student_ids, $2), updated_at = $3
WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, courseID, studentID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("remove mdc student: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check mdc remove: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AssignFaculty sets the instructor for a course.
func (r *MDCRepository) AssignFaculty(ctx context.Context, courseID, facultyID string) error {
	const query = `UPDATE mdc_courses SET faculty_id = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, courseID, facultyID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("assign mdc faculty: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check mdc faculty assign: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
