package models

import "time"

// Semester is an academic term record owned by a department. The numeric
// label on an MDC course is a separate concept (see MDCCourse).
type Semester struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Number       int       `db:"number" json:"number"`
	DepartmentID string    `db:"department_id" json:"department_id"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// AcademicYearOfStudy derives the year of study from the semester number
// (semesters 1-2 are year 1, 3-4 year 2, and so on).
func (s Semester) AcademicYearOfStudy() int {
	if s.Number <= 0 {
		return 0
	}
	return (s.Number + 1) / 2
}

// SemesterTransition is one append-only ledger row recording a student's
// semester reassignment. Rows are never updated or deleted.
type SemesterTransition struct {
	ID         string    `db:"id" json:"id"`
	StudentID  string    `db:"student_id" json:"student_id"`
	SemesterID string    `db:"semester_id" json:"semester_id"`
	ChangedBy  string    `db:"changed_by" json:"changed_by"`
	Reason     string    `db:"reason" json:"reason"`
	ChangedAt  time.Time `db:"changed_at" json:"changed_at"`
}

// SemesterTransitionRow is a history row joined with the semester name.
type SemesterTransitionRow struct {
	SemesterID   string    `db:"semester_id" json:"semester_id"`
	SemesterName string    `db:"semester_name" json:"semester_name"`
	ChangedBy    string    `db:"changed_by" json:"changed_by"`
	Reason       string    `db:"reason" json:"reason"`
	ChangedAt    time.Time `db:"changed_at" json:"changed_at"`
}
