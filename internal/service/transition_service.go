package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campuskit/attendance-api/internal/models"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
)

type studentReader interface {
	GetByID(ctx context.Context, id string) (*models.Student, error)
}

type semesterReader interface {
	GetByID(ctx context.Context, id string) (*models.Semester, error)
}

type transitionRepository interface {
	Apply(ctx context.Context, transition *models.SemesterTransition, currentYear int) error
	History(ctx context.Context, studentID string) ([]models.SemesterTransitionRow, error)
}

type transitionCounter interface {
	SemesterTransitioned()
}

// TransitionService moves a student between semesters while keeping the
// append-only ledger in lockstep with the student's current pointer.
type TransitionService struct {
	students    studentReader
	semesters   semesterReader
	transitions transitionRepository
	notifier    Dispatcher
	metrics     transitionCounter
	logger      *zap.Logger
}

// NewTransitionService constructs the service.
func NewTransitionService(students studentReader, semesters semesterReader, transitions transitionRepository, notifier Dispatcher, metrics transitionCounter, logger *zap.Logger) *TransitionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransitionService{
		students:    students,
		semesters:   semesters,
		transitions: transitions,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// TransitionResult reports the applied reassignment.
type TransitionResult struct {
	StudentID       string `json:"student_id"`
	NewSemesterName string `json:"new_semester_name"`
}

// Transition reassigns a student to a new semester. Preconditions are
// checked in order, short-circuiting on the first failure: the student
// must exist and not be soft-deleted, the target semester must exist, and
// it must differ from the current placement. The pointer update and the
// ledger append commit as one transaction.
func (s *TransitionService) Transition(ctx context.Context, studentID, newSemesterID, changedBy, reason string) (*TransitionResult, error) {
	if studentID == "" || newSemesterID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id and semester id required")
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

	target, err := s.semesters.GetByID(ctx, newSemesterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrInvalidSemester
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load semester")
	}

	if student.SemesterID == target.ID {
		return nil, appErrors.ErrNoChange
	}

	if reason == "" {
		reason = s.defaultReason(ctx, student.SemesterID, target.Name)
	}

	transition := &models.SemesterTransition{
		StudentID:  student.ID,
		SemesterID: target.ID,
		ChangedBy:  changedBy,
		Reason:     reason,
		ChangedAt:  time.Now().UTC(),
	}
	if err := s.transitions.Apply(ctx, transition, target.AcademicYearOfStudy()); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply semester transition")
	}

	if s.metrics != nil {
		s.metrics.SemesterTransitioned()
	}
	if s.notifier != nil {
		s.notifier.Dispatch(models.Notification{
			UserID:  student.UserID,
			Title:   "Semester updated",
			Message: fmt.Sprintf("You have been moved to %s.", target.Name),
			Link:    "/profile",
		})
	}

	return &TransitionResult{StudentID: student.ID, NewSemesterName: target.Name}, nil
}

// History returns a student's transition ledger, newest first.
func (s *TransitionService) History(ctx context.Context, studentID string) ([]models.SemesterTransitionRow, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}
	history, err := s.transitions.History(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load transition history")
	}
	return history, nil
}

// defaultReason builds the auto-generated "Old → New" description. A
// failed lookup of the old semester degrades to the name being blank; the
// ledger row is still written.
func (s *TransitionService) defaultReason(ctx context.Context, oldSemesterID, newName string) string {
	oldName := ""
	if old, err := s.semesters.GetByID(ctx, oldSemesterID); err == nil {
		oldName = old.Name
	} else {
		s.logger.Warn("could not resolve previous semester for reason", zap.String("semester_id", oldSemesterID), zap.Error(err))
	}
	return fmt.Sprintf("%s → %s", oldName, newName)
}
