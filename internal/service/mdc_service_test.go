package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/attendance-api/internal/models"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
)

type mockMDCRepo struct {
	courses map[string]*models.MDCCourse
	nextID  int
}

func (m *mockMDCRepo) Create(ctx context.Context, course *models.MDCCourse) error {
	if m.courses == nil {
		m.courses = make(map[string]*models.MDCCourse)
	}
	m.nextID++
	course.ID = "mdc-new"
	stored := *course
	m.courses[course.ID] = &stored
	return nil
}

func (m *mockMDCRepo) GetByID(ctx context.Context, id string) (*models.MDCCourse, error) {
	if c, ok := m.courses[id]; ok {
		copied := *c
		copied.StudentIDs = append(copied.StudentIDs[:0:0], c.StudentIDs...)
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockMDCRepo) EligibleCourses(ctx context.Context, homeDepartmentID string) ([]models.MDCCourse, error) {
	var out []models.MDCCourse
	for _, c := range m.courses {
		if c.HomeDepartmentID == homeDepartmentID && c.MDCDepartmentID != homeDepartmentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockMDCRepo) AddStudent(ctx context.Context, courseID, studentID string) error {
	c, ok := m.courses[courseID]
	if !ok || c.HasStudent(studentID) {
		return sql.ErrNoRows
	}
	c.StudentIDs = append(c.StudentIDs, studentID)
	return nil
}

func (m *mockMDCRepo) RemoveStudent(ctx context.Context, courseID, studentID string) error {
	c, ok := m.courses[courseID]
	if !ok {
		return sql.ErrNoRows
	}
	filtered := c.StudentIDs[:0]
	for _, id := range c.StudentIDs {
		if id != studentID {
			filtered = append(filtered, id)
		}
	}
	c.StudentIDs = filtered
	return nil
}

func (m *mockMDCRepo) AssignFaculty(ctx context.Context, courseID, facultyID string) error {
	c, ok := m.courses[courseID]
	if !ok {
		return sql.ErrNoRows
	}
	c.FacultyID = &facultyID
	return nil
}

type mockFacultyReader struct {
	faculty map[string]*models.Faculty
	active  []models.FacultyInfo
}

func (m *mockFacultyReader) GetByID(ctx context.Context, id string) (*models.Faculty, error) {
	if f, ok := m.faculty[id]; ok {
		return f, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockFacultyReader) ListActiveByDepartment(ctx context.Context, departmentID string) ([]models.FacultyInfo, error) {
	var out []models.FacultyInfo
	for _, f := range m.active {
		if f.DepartmentID == departmentID {
			out = append(out, f)
		}
	}
	return out, nil
}

type mockCatalogCache struct {
	gets, sets  int
	invalidated []string
}

func (m *mockCatalogCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.gets++
	return appErrors.ErrCacheMiss
}

func (m *mockCatalogCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.sets++
	return nil
}

func (m *mockCatalogCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	return nil
}

func newMDCFixture() (*MDCService, *mockMDCRepo, *mockCatalogCache) {
	repo := &mockMDCRepo{courses: map[string]*models.MDCCourse{
		"mdc-1": {
			ID:               "mdc-1",
			CourseName:       "Intro to Robotics",
			HomeDepartmentID: "dep-cs",
			MDCDepartmentID:  "dep-mech",
			Year:             2,
			Semester:         3,
			StudentIDs:       []string{"stu-1"},
		},
	}}
	students := &mockStudentReader{students: map[string]*models.Student{
		"stu-1": {ID: "stu-1", UserID: "user-1", SemesterID: "sem-3"},
		"stu-2": {ID: "stu-2", UserID: "user-2", SemesterID: "sem-3"},
	}}
	deleted := time.Now().UTC()
	students.students["stu-gone"] = &models.Student{ID: "stu-gone", DeletedAt: &deleted}
	faculty := &mockFacultyReader{
		faculty: map[string]*models.Faculty{
			"fac-mech":     {ID: "fac-mech", DepartmentID: "dep-mech", Active: true},
			"fac-cs":       {ID: "fac-cs", DepartmentID: "dep-cs", Active: true},
			"fac-inactive": {ID: "fac-inactive", DepartmentID: "dep-mech", Active: false},
		},
		active: []models.FacultyInfo{
			{ID: "fac-mech", FullName: "Mech Prof", DepartmentID: "dep-mech"},
			{ID: "fac-cs", FullName: "CS Prof", DepartmentID: "dep-cs"},
		},
	}
	cache := &mockCatalogCache{}
	svc := NewMDCService(repo, students, faculty, cache, time.Minute, nil, nil)
	return svc, repo, cache
}

func TestCreateCourseRejectsSameDepartment(t *testing.T) {
	svc, _, _ := newMDCFixture()

	_, err := svc.CreateCourse(context.Background(), CreateCourseRequest{
		CourseName:       "Self Elective",
		HomeDepartmentID: "dep-cs",
		MDCDepartmentID:  "dep-cs",
		Year:             1,
		Semester:         1,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION", appErrors.FromError(err).Code)
}

func TestCreateCourseChecksFacultyDepartment(t *testing.T) {
	svc, _, _ := newMDCFixture()

	facultyID := "fac-cs"
	_, err := svc.CreateCourse(context.Background(), CreateCourseRequest{
		CourseName:       "Robotics II",
		HomeDepartmentID: "dep-cs",
		MDCDepartmentID:  "dep-mech",
		Year:             2,
		Semester:         4,
		FacultyID:        &facultyID,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION", appErrors.FromError(err).Code)

	facultyID = "fac-mech"
	course, err := svc.CreateCourse(context.Background(), CreateCourseRequest{
		CourseName:       "Robotics II",
		HomeDepartmentID: "dep-cs",
		MDCDepartmentID:  "dep-mech",
		Year:             2,
		Semester:         4,
		FacultyID:        &facultyID,
	})
	require.NoError(t, err)
	assert.Equal(t, "mdc-new", course.ID)
}

func TestEligibleCoursesExcludesHomeDepartment(t *testing.T) {
	svc, repo, cache := newMDCFixture()
	repo.courses["mdc-2"] = &models.MDCCourse{
		ID:               "mdc-2",
		HomeDepartmentID: "dep-mech",
		MDCDepartmentID:  "dep-cs",
	}

	courses, err := svc.EligibleCourses(context.Background(), "dep-cs")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "mdc-1", courses[0].ID)
	for _, c := range courses {
		assert.NotEqual(t, c.HomeDepartmentID, c.MDCDepartmentID)
	}
	assert.Equal(t, 1, cache.gets)
	assert.Equal(t, 1, cache.sets)
}

func TestEnrollIsIdempotent(t *testing.T) {
	svc, repo, _ := newMDCFixture()

	course, err := svc.Enroll(context.Background(), "mdc-1", "stu-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"stu-1"}, []string(course.StudentIDs))
	assert.Len(t, repo.courses["mdc-1"].StudentIDs, 1)
}

func TestEnrollAddsStudent(t *testing.T) {
	svc, repo, cache := newMDCFixture()

	course, err := svc.Enroll(context.Background(), "mdc-1", "stu-2")
	require.NoError(t, err)
	assert.True(t, course.HasStudent("stu-2"))
	assert.Len(t, repo.courses["mdc-1"].StudentIDs, 2)
	assert.NotEmpty(t, cache.invalidated)
}

func TestEnrollRejectsDeletedStudent(t *testing.T) {
	svc, _, _ := newMDCFixture()

	_, err := svc.Enroll(context.Background(), "mdc-1", "stu-gone")
	require.Error(t, err)
	assert.Equal(t, "DELETED", appErrors.FromError(err).Code)
}

func TestEnrollUnknownCourseOrStudent(t *testing.T) {
	svc, _, _ := newMDCFixture()

	_, err := svc.Enroll(context.Background(), "missing", "stu-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)

	_, err = svc.Enroll(context.Background(), "mdc-1", "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
}

func TestWithdrawRemovesStudent(t *testing.T) {
	svc, repo, _ := newMDCFixture()

	course, err := svc.Withdraw(context.Background(), "mdc-1", "stu-1")
	require.NoError(t, err)
	assert.False(t, course.HasStudent("stu-1"))
	assert.Empty(t, repo.courses["mdc-1"].StudentIDs)
}

func TestEligibleFacultyComesFromOfferingDepartment(t *testing.T) {
	svc, _, _ := newMDCFixture()

	rows, err := svc.EligibleFaculty(context.Background(), "mdc-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "fac-mech", rows[0].ID)
}

func TestAssignFacultyEnforcesEligibility(t *testing.T) {
	svc, repo, _ := newMDCFixture()

	_, err := svc.AssignFaculty(context.Background(), "mdc-1", "fac-cs")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION", appErrors.FromError(err).Code)

	_, err = svc.AssignFaculty(context.Background(), "mdc-1", "fac-inactive")
	require.Error(t, err)

	course, err := svc.AssignFaculty(context.Background(), "mdc-1", "fac-mech")
	require.NoError(t, err)
	require.NotNil(t, course.FacultyID)
	assert.Equal(t, "fac-mech", *course.FacultyID)
	assert.Equal(t, "fac-mech", *repo.courses["mdc-1"].FacultyID)
}
