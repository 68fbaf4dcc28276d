package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/campuskit/attendance-api/internal/models"
)

// SemesterRepository reads semester term rows.
type SemesterRepository struct {
	db *sqlx.DB
}

// NewSemesterRepository constructs the repository.
func NewSemesterRepository(db *sqlx.DB) *SemesterRepository {
	return &SemesterRepository{db: db}
}

// GetByID fetches a semester by identifier.
func (r *SemesterRepository) GetByID(ctx context.Context, id string) (*models.Semester, error) {
	const query = `SELECT id, name, number, department_id, academic_year, created_at, updated_at
FROM semesters WHERE id = $1`
	var semester models.Semester
	if err := r.db.GetContext(ctx, &semester, query, id); err != nil {
		return nil, err
	}
	return &semester, nil
}
