package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/attendance-api/internal/models"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
)

const mdcCatalogKeyPrefix = "mdc:catalog:"

type mdcRepository interface {
	Create(ctx context.Context, course *models.MDCCourse) error
	GetByID(ctx context.Context, id string) (*models.MDCCourse, error)
	EligibleCourses(ctx context.Context, homeDepartmentID string) ([]models.MDCCourse, error)
	AddStudent(ctx context.Context, courseID, studentID string) error
	RemoveStudent(ctx context.Context, courseID, studentID string) error
	AssignFaculty(ctx context.Context, courseID, facultyID string) error
}

type facultyReader interface {
	GetByID(ctx context.Context, id string) (*models.Faculty, error)
	ListActiveByDepartment(ctx context.Context, departmentID string) ([]models.FacultyInfo, error)
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// MDCService manages cross-department elective courses. Rosters are
// explicit student-id sets; they are never reconciled against the
// student's live semester or department, so a transfer after enrollment
// keeps the seat.
type MDCService struct {
	repo      mdcRepository
	students  studentReader
	faculty   facultyReader
	cache     catalogCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMDCService constructs the registry service.
func NewMDCService(repo mdcRepository, students studentReader, faculty facultyReader, cache catalogCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *MDCService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &MDCService{
		repo:      repo,
		students:  students,
		faculty:   faculty,
		cache:     cache,
		cacheTTL:  cacheTTL,
		validator: validate,
		logger:    logger,
	}
}

// CreateCourseRequest describes a new elective offering. Year and
// Semester are numeric labels frozen at enrollment time.
type CreateCourseRequest struct {
	CourseName       string  `json:"course_name" validate:"required"`
	HomeDepartmentID string  `json:"home_department_id" validate:"required"`
	MDCDepartmentID  string  `json:"mdc_department_id" validate:"required"`
	Year             int     `json:"year" validate:"required,min=1,max=6"`
	Semester         int     `json:"semester" validate:"required,min=1,max=12"`
	FacultyID        *string `json:"faculty_id"`
}

// CreateCourse registers an elective. A course offered by the home
// department itself would never be eligible, so it is rejected outright.
func (s *MDCService) CreateCourse(ctx context.Context, req CreateCourseRequest) (*models.MDCCourse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.HomeDepartmentID == req.MDCDepartmentID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "home and offering department must differ")
	}
	if req.FacultyID != nil {
		if err := s.checkFacultyEligible(ctx, *req.FacultyID, req.MDCDepartmentID); err != nil {
			return nil, err
		}
	}

	course := &models.MDCCourse{
		CourseName:       req.CourseName,
		HomeDepartmentID: req.HomeDepartmentID,
		MDCDepartmentID:  req.MDCDepartmentID,
		Year:             req.Year,
		Semester:         req.Semester,
		FacultyID:        req.FacultyID,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create mdc course")
	}
	s.invalidateCatalog(ctx, course.HomeDepartmentID)
	return course, nil
}

// EligibleCourses returns the elective catalog for a home department,
// never including courses offered by that department itself.
func (s *MDCService) EligibleCourses(ctx context.Context, homeDepartmentID string) ([]models.MDCCourse, error) {
	if homeDepartmentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "home department id required")
	}

	key := mdcCatalogKeyPrefix + homeDepartmentID
	if s.cache != nil {
		var cached []models.MDCCourse
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("mdc catalog cache read failed", zap.Error(err))
		}
	}

	courses, err := s.repo.EligibleCourses(ctx, homeDepartmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list eligible courses")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, courses, s.cacheTTL); err != nil {
			s.logger.Warn("mdc catalog cache write failed", zap.Error(err))
		}
	}
	return courses, nil
}

// Enroll adds a student to the course roster. Enrolling a student who is
// already on the roster is a no-op; overlapping enrollment across other
// courses is not checked here.
func (s *MDCService) Enroll(ctx context.Context, courseID, studentID string) (*models.MDCCourse, error) {
	if courseID == "" || studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course id and student id required")
	}
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if student.DeletedAt != nil {
		return nil, appErrors.Clone(appErrors.ErrDeleted, "student has been deleted")
	}

	if course.HasStudent(studentID) {
		return course, nil
	}

	if err := s.repo.AddStudent(ctx, courseID, studentID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll student")
	}

	s.invalidateCatalog(ctx, course.HomeDepartmentID)
	return s.getCourse(ctx, courseID)
}

// Withdraw removes a student from the course roster.
func (s *MDCService) Withdraw(ctx context.Context, courseID, studentID string) (*models.MDCCourse, error) {
	if courseID == "" || studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course id and student id required")
	}
	if err := s.repo.RemoveStudent(ctx, courseID, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "mdc course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to withdraw student")
	}
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx, course.HomeDepartmentID)
	return course, nil
}

// EligibleFaculty lists active faculty of the offering department; staff
// of the home department are not eligible to teach the elective.
func (s *MDCService) EligibleFaculty(ctx context.Context, courseID string) ([]models.FacultyInfo, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	rows, err := s.faculty.ListActiveByDepartment(ctx, course.MDCDepartmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list eligible faculty")
	}
	return rows, nil
}

// AssignFaculty sets the instructor, who must be active in the offering
// department.
func (s *MDCService) AssignFaculty(ctx context.Context, courseID, facultyID string) (*models.MDCCourse, error) {
	course, err := s.getCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if err := s.checkFacultyEligible(ctx, facultyID, course.MDCDepartmentID); err != nil {
		return nil, err
	}
	if err := s.repo.AssignFaculty(ctx, courseID, facultyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "mdc course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign faculty")
	}
	return s.getCourse(ctx, courseID)
}

func (s *MDCService) getCourse(ctx context.Context, courseID string) (*models.MDCCourse, error) {
	course, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "mdc course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load mdc course")
	}
	return course, nil
}

func (s *MDCService) checkFacultyEligible(ctx context.Context, facultyID, mdcDepartmentID string) error {
	member, err := s.faculty.GetByID(ctx, facultyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	if !member.Active {
		return appErrors.Clone(appErrors.ErrValidation, "faculty is not active")
	}
	if member.DepartmentID != mdcDepartmentID {
		return appErrors.Clone(appErrors.ErrValidation, "faculty must belong to the offering department")
	}
	return nil
}

func (s *MDCService) invalidateCatalog(ctx context.Context, homeDepartmentID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, mdcCatalogKeyPrefix+homeDepartmentID); err != nil {
		s.logger.Warn("mdc catalog invalidation failed", zap.Error(err))
	}
}
