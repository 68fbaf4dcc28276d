package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuskit/attendance-api/internal/models"
)

// TransitionRepository persists the append-only semester transition ledger
// together with the student's current-semester pointer.
type TransitionRepository struct {
	db *sqlx.DB
}

// NewTransitionRepository constructs the repository.
func NewTransitionRepository(db *sqlx.DB) *TransitionRepository {
	return &TransitionRepository{db: db}
}

// Apply updates the student's semester pointer and year of study, and
// appends one ledger row, all inside a single transaction. After it
// commits, the newest ledger row always matches the student's pointer.
func (r *TransitionRepository) Apply(ctx context.Context, transition *models.SemesterTransition, currentYear int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin semester transition: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if transition.ID == "" {
		transition.ID = uuid.NewString()
	}
	if transition.ChangedAt.IsZero() {
		transition.ChangedAt = time.Now().UTC()
	}

	const updateStudent = `UPDATE students
SET semester_id = $1, current_year = $2, updated_at = $3
WHERE id = $4 AND deleted_at IS NULL`
	result, err := tx.ExecContext(ctx, updateStudent, transition.SemesterID, currentYear, transition.ChangedAt, transition.StudentID)
	if err != nil {
		return fmt.Errorf("update student semester: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check student update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update student semester: student %s not found", transition.StudentID)
	}

	const insertLedger = `INSERT INTO semester_transitions
	(id, student_id, semester_id, changed_by, reason, changed_at)
	VALUES (:id, :student_id, :semester_id, :changed_by, :reason, :changed_at)`
	if _, err := tx.NamedExecContext(ctx, insertLedger, transition); err != nil {
		return fmt.Errorf("append semester transition: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit semester transition: %w", err)
	}
	committed = true
	return nil
}

// History returns a student's transitions joined with semester names,
// newest first.
func (r *TransitionRepository) History(ctx context.Context, studentID string) ([]models.SemesterTransitionRow, error) {
	const query = `SELECT st.semester_id, sem.name AS semester_name, st.changed_by, st.reason, st.changed_at
FROM semester_transitions st
JOIN semesters sem ON sem.id = st.semester_id
WHERE st.student_id = $1
ORDER BY st.changed_at DESC`
	var history []models.SemesterTransitionRow
	if err := r.db.SelectContext(ctx, &history, query, studentID); err != nil {
		return nil, fmt.Errorf("list semester transitions: %w", err)
	}
	return history, nil
}
