package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "PRESENT"
	AttendanceStatusAbsent  AttendanceStatus = "ABSENT"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one stored attendance fact. The identity tuple
// (student_id, subject_id, date, period) is globally unique; re-submission
// for the same tuple only mutates status, marked_by and updated_at.
type AttendanceRecord struct {
	ID         string           `db:"id" json:"id"`
	StudentID  string           `db:"student_id" json:"student_id"`
	SubjectID  string           `db:"subject_id" json:"subject_id"`
	Date       time.Time        `db:"date" json:"date"`
	Period     int              `db:"period" json:"period"`
	Status     AttendanceStatus `db:"status" json:"status"`
	SemesterID string           `db:"semester_id" json:"semester_id"`
	MarkedBy   string           `db:"marked_by" json:"marked_by"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
}

// AttendanceEntry is one per-student decision inside a batch submission.
type AttendanceEntry struct {
	StudentID string           `json:"student_id"`
	Period    int              `json:"period"`
	Status    AttendanceStatus `json:"status"`
}

// StudentSubjectStats summarises a (student, subject) pair.
type StudentSubjectStats struct {
	Total      int `json:"total"`
	Present    int `json:"present"`
	Percentage int `json:"percentage"`
}

// SubjectStats is one row of the per-subject breakdown for a student.
type SubjectStats struct {
	SubjectID   string `db:"subject_id" json:"subject_id"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	Present     int    `db:"present" json:"present"`
	Total       int    `db:"total" json:"total"`
	Percentage  int    `json:"percentage"`
}

// CalendarRow is the raw per-period row feeding calendar bucketing.
// Rows are scanned in write order so the bucketing preserves the
// last-write-wins behaviour per date.
type CalendarRow struct {
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	UpdatedAt time.Time        `db:"updated_at" json:"-"`
}

// CalendarBuckets splits a student's marked dates into disjoint sets.
// Dates are formatted YYYY-MM-DD and each date appears in one bucket only.
type CalendarBuckets struct {
	PresentDates []string `json:"present_dates"`
	AbsentDates  []string `json:"absent_dates"`
}
