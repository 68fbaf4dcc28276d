package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/attendance-api/internal/models"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
)

type mockFacultyByUser struct {
	byUser map[string]*models.Faculty
}

func (m *mockFacultyByUser) FindByUserID(ctx context.Context, userID string) (*models.Faculty, error) {
	if f, ok := m.byUser[userID]; ok {
		return f, nil
	}
	return nil, sql.ErrNoRows
}

type mockAssignmentChecker struct {
	assignments map[string]bool
}

func (m *mockAssignmentChecker) IsAssigned(ctx context.Context, facultyID, subjectID string) (bool, error) {
	return m.assignments[facultyID+"|"+subjectID], nil
}

func TestInstructorOfResolvesFacultyID(t *testing.T) {
	svc := NewAccessService(
		&mockFacultyByUser{byUser: map[string]*models.Faculty{
			"user-1": {ID: "fac-1", UserID: "user-1", Active: true},
		}},
		&mockAssignmentChecker{assignments: map[string]bool{"fac-1|sub-1": true}},
	)

	facultyID, err := svc.InstructorOf(context.Background(), "user-1", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "fac-1", facultyID)
}

func TestInstructorOfRejectsUnassigned(t *testing.T) {
	svc := NewAccessService(
		&mockFacultyByUser{byUser: map[string]*models.Faculty{
			"user-1": {ID: "fac-1", UserID: "user-1", Active: true},
		}},
		&mockAssignmentChecker{},
	)

	_, err := svc.InstructorOf(context.Background(), "user-1", "sub-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", appErrors.FromError(err).Code)
}

func TestInstructorOfRejectsMissingOrInactiveProfile(t *testing.T) {
	svc := NewAccessService(
		&mockFacultyByUser{byUser: map[string]*models.Faculty{
			"user-2": {ID: "fac-2", UserID: "user-2", Active: false},
		}},
		&mockAssignmentChecker{assignments: map[string]bool{"fac-2|sub-1": true}},
	)

	_, err := svc.InstructorOf(context.Background(), "user-unknown", "sub-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", appErrors.FromError(err).Code)

	_, err = svc.InstructorOf(context.Background(), "user-2", "sub-1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", appErrors.FromError(err).Code)
}
