package models

import "time"

// Faculty is a teaching staff member belonging to one department.
type Faculty struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	EmployeeNo   string    `db:"employee_no" json:"employee_no"`
	DepartmentID string    `db:"department_id" json:"department_id"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// FacultyInfo is the listing view joined with the owning user account.
type FacultyInfo struct {
	ID           string `db:"id" json:"id"`
	EmployeeNo   string `db:"employee_no" json:"employee_no"`
	FullName     string `db:"full_name" json:"full_name"`
	DepartmentID string `db:"department_id" json:"department_id"`
}
