package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuskit/attendance-api/internal/models"
)

// SubjectRepository reads subjects and instructor assignments.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs the repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// GetByID fetches a subject by identifier.
func (r *SubjectRepository) GetByID(ctx context.Context, id string) (*models.Subject, error) {
	const query = `SELECT id, name, code, semester_id, department_id, created_at, updated_at
FROM subjects WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// IsAssigned reports whether the faculty member is an instructor-of-record
// for the subject.
func (r *SubjectRepository) IsAssigned(ctx context.Context, facultyID, subjectID string) (bool, error) {
	const query = `SELECT EXISTS (
	SELECT 1 FROM subject_assignments WHERE faculty_id = $1 AND subject_id = $2
)`
	var assigned bool
	if err := r.db.GetContext(ctx, &assigned, query, facultyID, subjectID); err != nil {
		return false, fmt.Errorf("check subject assignment: %w", err)
	}
	return assigned, nil
}
