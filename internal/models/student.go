package models

import "time"

// Student is an enrolled learner. SemesterID is the current placement
// pointer; every change to it must be paired with a SemesterTransition
// row (enforced by the transition service, not by the schema).
type Student struct {
	ID            string     `db:"id" json:"id"`
	UserID        string     `db:"user_id" json:"user_id"`
	EnrollmentNo  string     `db:"enrollment_no" json:"enrollment_no"`
	DepartmentID  string     `db:"department_id" json:"department_id"`
	SemesterID    string     `db:"semester_id" json:"semester_id"`
	AdmissionYear int        `db:"admission_year" json:"admission_year"`
	CurrentYear   int        `db:"current_year" json:"current_year"`
	DeletedAt     *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// RosterEntry is the minimal view used to build a marking session.
type RosterEntry struct {
	ID           string `db:"id" json:"id"`
	EnrollmentNo string `db:"enrollment_no" json:"enrollment_no"`
	FullName     string `db:"full_name" json:"full_name"`
}
