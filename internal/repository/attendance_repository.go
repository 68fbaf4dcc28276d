package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campuskit/attendance-api/internal/models"
)

// AttendanceRepository owns the canonical attendance fact table.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// UpsertBatch writes every entry of a marking session in one transaction.
// Each write is an upsert keyed by (student_id, subject_id, date, period);
// existing rows keep their created_at and semester_id. A failure on any
// entry rolls back the whole batch.
func (r *AttendanceRepository) UpsertBatch(ctx context.Context, subjectID string, date time.Time, semesterID, markedBy string, entries []models.AttendanceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin attendance batch: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	const query = `INSERT INTO attendance_records
	(id, student_id, subject_id, date, period, status, semester_id, marked_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (student_id, subject_id, date, period)
DO UPDATE SET status = EXCLUDED.status, marked_by = EXCLUDED.marked_by, updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	for _, entry := range entries {
		if _, err := tx.ExecContext(ctx, query,
			uuid.NewString(), entry.StudentID, subjectID, date, entry.Period,
			entry.Status, semesterID, markedBy, now, now,
		); err != nil {
			return fmt.Errorf("upsert attendance for student %s period %d: %w", entry.StudentID, entry.Period, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attendance batch: %w", err)
	}
	committed = true
	return nil
}

// ListByDate returns the stored decisions for a subject and date. When
// markedBy is non-empty, only that instructor's own marks are returned so
// an editing session never silently overwrites a colleague's entries.
func (r *AttendanceRepository) ListByDate(ctx context.Context, subjectID string, date time.Time, markedBy string) ([]models.AttendanceRecord, error) {
	query := `SELECT id, student_id, subject_id, date, period, status, semester_id, marked_by, created_at, updated_at
FROM attendance_records
WHERE subject_id = $1 AND date = $2`
	args := []interface{}{subjectID, date}
	if markedBy != "" {
		query += " AND marked_by = $3"
		args = append(args, markedBy)
	}
	query += " ORDER BY period, student_id"

	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance by date: %w", err)
	}
	return records, nil
}

// StudentSubjectCounts returns total and present counts for one pair.
func (r *AttendanceRepository) StudentSubjectCounts(ctx context.Context, studentID, subjectID string) (total int, present int, err error) {
	const query = `SELECT COUNT(*) AS total,
       COUNT(*) FILTER (WHERE status = 'PRESENT') AS present
FROM attendance_records
WHERE student_id = $1 AND subject_id = $2`
	var row struct {
		Total   int `db:"total"`
		Present int `db:"present"`
	}
	if err := r.db.GetContext(ctx, &row, query, studentID, subjectID); err != nil {
		return 0, 0, fmt.Errorf("count student subject attendance: %w", err)
	}
	return row.Total, row.Present, nil
}

// CalendarRows returns every per-period row for a student's semester in
// write order (oldest update first). The aggregator folds these into
// per-date buckets; keeping write order preserves the last-write-wins
// bucketing of mixed-status dates.
func (r *AttendanceRepository) CalendarRows(ctx context.Context, studentID, semesterID string) ([]models.CalendarRow, error) {
	const query = `SELECT date, status, updated_at
FROM attendance_records
WHERE student_id = $1 AND semester_id = $2
ORDER BY updated_at ASC, period ASC`
	var rows []models.CalendarRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID, semesterID); err != nil {
		return nil, fmt.Errorf("calendar rows: %w", err)
	}
	return rows, nil
}

// SubjectGroupCounts returns one row per subject the student has at least
// one record for within the semester. Subjects without records are omitted.
func (r *AttendanceRepository) SubjectGroupCounts(ctx context.Context, studentID, semesterID string) ([]models.SubjectStats, error) {
	const query = `SELECT sub.id AS subject_id, sub.name AS subject_name,
       COUNT(*) AS total,
       COUNT(*) FILTER (WHERE ar.status = 'PRESENT') AS present
FROM attendance_records ar
JOIN subjects sub ON sub.id = ar.subject_id
WHERE ar.student_id = $1 AND ar.semester_id = $2
GROUP BY sub.id, sub.name
ORDER BY sub.name`
	var rows []models.SubjectStats
	if err := r.db.SelectContext(ctx, &rows, query, studentID, semesterID); err != nil {
		return nil, fmt.Errorf("subject group counts: %w", err)
	}
	return rows, nil
}
