package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campuskit/attendance-api/internal/models"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type attendanceRepository interface {
	UpsertBatch(ctx context.Context, subjectID string, date time.Time, semesterID, markedBy string, entries []models.AttendanceEntry) error
	ListByDate(ctx context.Context, subjectID string, date time.Time, markedBy string) ([]models.AttendanceRecord, error)
}

type subjectReader interface {
	GetByID(ctx context.Context, id string) (*models.Subject, error)
}

type studentAccountReader interface {
	UserIDs(ctx context.Context, studentIDs []string) (map[string]string, error)
}

// Dispatcher is the narrow notification collaborator. Dispatch must not
// block and its outcome never affects the triggering write.
type Dispatcher interface {
	Dispatch(n models.Notification)
}

type attendanceCounter interface {
	AttendanceRecorded(count int)
}

// AttendanceService accepts and idempotently stores attendance decisions.
type AttendanceService struct {
	repo      attendanceRepository
	subjects  subjectReader
	students  studentAccountReader
	notifier  Dispatcher
	metrics   attendanceCounter
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, subjects subjectReader, students studentAccountReader, notifier Dispatcher, metrics attendanceCounter, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &AttendanceService{
		repo:      repo,
		subjects:  subjects,
		students:  students,
		notifier:  notifier,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
	svc.validator.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(strings.ToUpper(fl.Field().String())).Valid()
	})
	return svc
}

// BatchEntryRequest is one per-student decision in the submit payload.
type BatchEntryRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Period    int    `json:"period" validate:"required,min=1,max=5"`
	Status    string `json:"status" validate:"required,attendance_status"`
}

// SubmitBatchRequest is the marking session payload. The caller must have
// already verified that the submitter is an instructor-of-record for the
// subject; the store trusts that boundary.
type SubmitBatchRequest struct {
	SubjectID string              `json:"subject_id" validate:"required"`
	Date      string              `json:"date" validate:"required"`
	Entries   []BatchEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

// BatchResult reports how many input entries were processed. The count is
// stable across identical resubmissions.
type BatchResult struct {
	Count int `json:"count"`
}

// SubmitBatch persists a marking session as a single atomic unit. The
// target date must not be after the current calendar date.
func (s *AttendanceService) SubmitBatch(ctx context.Context, req SubmitBatchRequest, markedBy string) (*BatchResult, error) {
	if markedBy == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing instructor identity")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}
	if req.Date > s.now().Format(dateLayout) {
		return nil, appErrors.Clone(appErrors.ErrFutureDate, "attendance cannot be recorded for a future date")
	}

	seen := make(map[string]struct{}, len(req.Entries))
	entries := make([]models.AttendanceEntry, len(req.Entries))
	for i, item := range req.Entries {
		key := fmt.Sprintf("%s|%d", item.StudentID, item.Period)
		if _, ok := seen[key]; ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "duplicate student and period in payload")
		}
		seen[key] = struct{}{}
		entries[i] = models.AttendanceEntry{
			StudentID: item.StudentID,
			Period:    item.Period,
			Status:    models.AttendanceStatus(strings.ToUpper(item.Status)),
		}
	}

	subject, err := s.subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	if err := s.repo.UpsertBatch(ctx, subject.ID, date, subject.SemesterID, markedBy, entries); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attendance batch")
	}

	if s.metrics != nil {
		s.metrics.AttendanceRecorded(len(entries))
	}
	s.notifyStudents(ctx, subject, req.Date, entries)

	return &BatchResult{Count: len(entries)}, nil
}

// GetByDate returns stored decisions for a subject and date, used to
// pre-populate an editing session. A non-empty markedBy restricts the
// result to that instructor's own prior marks.
func (s *AttendanceService) GetByDate(ctx context.Context, subjectID, dateStr, markedBy string) ([]models.AttendanceRecord, error) {
	if subjectID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject id required")
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format, expected YYYY-MM-DD")
	}
	records, err := s.repo.ListByDate(ctx, subjectID, date, markedBy)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	return records, nil
}

// notifyStudents fans out fire-and-forget notifications after a commit.
// Lookup failures are logged and dropped; they never roll back the write.
func (s *AttendanceService) notifyStudents(ctx context.Context, subject *models.Subject, date string, entries []models.AttendanceEntry) {
	if s.notifier == nil || s.students == nil {
		return
	}
	ids := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.StudentID]; ok {
			continue
		}
		seen[entry.StudentID] = struct{}{}
		ids = append(ids, entry.StudentID)
	}
	accounts, err := s.students.UserIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("skipping attendance notifications", zap.Error(err))
		return
	}
	for _, id := range ids {
		userID, ok := accounts[id]
		if !ok {
			continue
		}
		s.notifier.Dispatch(models.Notification{
			UserID:  userID,
			Title:   "Attendance recorded",
			Message: fmt.Sprintf("Attendance for %s on %s has been recorded.", subject.Name, date),
			Link:    "/attendance/" + subject.ID,
		})
	}
}
