package models

import (
	"time"

	"github.com/lib/pq"
)

// MDCCourse is a multi-disciplinary elective. The roster is an explicit
// set of student ids rather than a join against semester membership:
// MDC enrollment intentionally survives later semester or department
// changes. Year and Semester are numeric labels frozen at enrollment
// time, not references to the Semester entity.
type MDCCourse struct {
	ID               string         `db:"id" json:"id"`
	CourseName       string         `db:"course_name" json:"course_name"`
	HomeDepartmentID string         `db:"home_department_id" json:"home_department_id"`
	MDCDepartmentID  string         `db:"mdc_department_id" json:"mdc_department_id"`
	Year             int            `db:"year" json:"year"`
	Semester         int            `db:"semester" json:"semester"`
	StudentIDs       pq.StringArray `db:"student_ids" json:"student_ids"`
	FacultyID        *string        `db:"faculty_id" json:"faculty_id,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// HasStudent reports whether the roster already contains the student.
func (c *MDCCourse) HasStudent(studentID string) bool {
	for _, id := range c.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
