package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campuskit/attendance-api/internal/models"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
)

type facultyByUserReader interface {
	FindByUserID(ctx context.Context, userID string) (*models.Faculty, error)
}

type assignmentChecker interface {
	IsAssigned(ctx context.Context, facultyID, subjectID string) (bool, error)
}

// AccessService answers the instructor-of-record question for a subject.
// It sits between the session layer and the attendance store so the store
// itself never inspects credentials.
type AccessService struct {
	faculty  facultyByUserReader
	subjects assignmentChecker
}

// NewAccessService constructs the guard.
func NewAccessService(faculty facultyByUserReader, subjects assignmentChecker) *AccessService {
	return &AccessService{faculty: faculty, subjects: subjects}
}

// InstructorOf resolves the faculty profile behind a user account and
// verifies the assignment to the subject. It returns the faculty id used
// as the marked_by identity for writes.
func (s *AccessService) InstructorOf(ctx context.Context, userID, subjectID string) (string, error) {
	member, err := s.faculty.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrForbidden, "no faculty profile for this account")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve faculty profile")
	}
	if !member.Active {
		return "", appErrors.Clone(appErrors.ErrForbidden, "faculty profile is inactive")
	}

	assigned, err := s.subjects.IsAssigned(ctx, member.ID, subjectID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject assignment")
	}
	if !assigned {
		return "", appErrors.Clone(appErrors.ErrForbidden, "not an instructor of record for this subject")
	}
	return member.ID, nil
}
