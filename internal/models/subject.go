package models

import "time"

// Subject is a taught course unit tied to a semester slot.
type Subject struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Code         string    `db:"code" json:"code"`
	SemesterID   string    `db:"semester_id" json:"semester_id"`
	DepartmentID string    `db:"department_id" json:"department_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectAssignment records an instructor-of-record for a subject.
type SubjectAssignment struct {
	ID        string    `db:"id" json:"id"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
