package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/attendance-api/internal/models"
	"github.com/campuskit/attendance-api/internal/repository"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
)

type studentRoster interface {
	Create(ctx context.Context, student *models.Student) error
	Roster(ctx context.Context, semesterID, departmentID string) ([]models.RosterEntry, error)
}

// RosterService manages the student cohort lists that feed marking
// sessions.
type RosterService struct {
	students  studentRoster
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRosterService constructs the service.
func NewRosterService(students studentRoster, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{students: students, validator: validate, logger: logger}
}

// CreateStudentRequest registers a student record against an existing
// user account.
type CreateStudentRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	EnrollmentNo  string `json:"enrollment_no" validate:"required"`
	DepartmentID  string `json:"department_id" validate:"required"`
	SemesterID    string `json:"semester_id" validate:"required"`
	AdmissionYear int    `json:"admission_year" validate:"required,min=2000"`
	CurrentYear   int    `json:"current_year" validate:"required,min=1,max=6"`
}

// CreateStudent registers a student. Enrollment numbers are unique across
// the institution.
func (s *RosterService) CreateStudent(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	student := &models.Student{
		UserID:        req.UserID,
		EnrollmentNo:  req.EnrollmentNo,
		DepartmentID:  req.DepartmentID,
		SemesterID:    req.SemesterID,
		AdmissionYear: req.AdmissionYear,
		CurrentYear:   req.CurrentYear,
	}
	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, appErrors.Clone(appErrors.ErrDuplicate, "enrollment number already registered")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Roster lists the active students of a semester/department cohort.
func (s *RosterService) Roster(ctx context.Context, semesterID, departmentID string) ([]models.RosterEntry, error) {
	if semesterID == "" || departmentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester id and department id required")
	}
	entries, err := s.students.Roster(ctx, semesterID, departmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roster")
	}
	return entries, nil
}
