package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campuskit/attendance-api/internal/models"
)

// FacultyRepository reads teaching staff rows.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository constructs the repository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// GetByID fetches a faculty row.
func (r *FacultyRepository) GetByID(ctx context.Context, id string) (*models.Faculty, error) {
	const query = `SELECT id, user_id, employee_no, department_id, active, created_at, updated_at
FROM faculty WHERE id = $1`
	var faculty models.Faculty
	if err := r.db.GetContext(ctx, &faculty, query, id); err != nil {
		return nil, err
	}
	return &faculty, nil
}

// FindByUserID resolves the faculty row owned by a user account.
func (r *FacultyRepository) FindByUserID(ctx context.Context, userID string) (*models.Faculty, error) {
	const query = `SELECT id, user_id, employee_no, department_id, active, created_at, updated_at
FROM faculty WHERE user_id = $1`
	var faculty models.Faculty
	if err := r.db.GetContext(ctx, &faculty, query, userID); err != nil {
		return nil, err
	}
	return &faculty, nil
}

// ListActiveByDepartment lists active faculty of one department joined
// with their account names.
func (r *FacultyRepository) ListActiveByDepartment(ctx context.Context, departmentID string) ([]models.FacultyInfo, error) {
	const query = `SELECT f.id, f.employee_no, u.full_name, f.department_id
FROM faculty f
JOIN users u ON u.id = f.user_id
WHERE f.department_id = $1 AND f.active = TRUE
ORDER BY u.full_name`
	var rows []models.FacultyInfo
	if err := r.db.SelectContext(ctx, &rows, query, departmentID); err != nil {
		return nil, fmt.Errorf("list department faculty: %w", err)
	}
	return rows, nil
}
