package service

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/campuskit/attendance-api/internal/models"
	appErrors "github.com/campuskit/attendance-api/pkg/errors"
)

type attendanceStatsRepository interface {
	StudentSubjectCounts(ctx context.Context, studentID, subjectID string) (total int, present int, err error)
	CalendarRows(ctx context.Context, studentID, semesterID string) ([]models.CalendarRow, error)
	SubjectGroupCounts(ctx context.Context, studentID, semesterID string) ([]models.SubjectStats, error)
}

// AggregatorService derives percentages and calendar views from the raw
// record store. Every call recomputes from the store; nothing is cached or
// materialized. Reads are not snapshot-consistent with racing writes,
// which is acceptable for dashboard consumption.
type AggregatorService struct {
	repo   attendanceStatsRepository
	logger *zap.Logger
}

// NewAggregatorService constructs the aggregator.
func NewAggregatorService(repo attendanceStatsRepository, logger *zap.Logger) *AggregatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AggregatorService{repo: repo, logger: logger}
}

// StatsForStudentSubject summarises one (student, subject) pair. With no
// records the percentage is 0; consumers treat 0 and "no data" alike.
func (s *AggregatorService) StatsForStudentSubject(ctx context.Context, studentID, subjectID string) (*models.StudentSubjectStats, error) {
	if studentID == "" || subjectID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id and subject id required")
	}
	total, present, err := s.repo.StudentSubjectCounts(ctx, studentID, subjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to compute attendance stats")
	}
	return &models.StudentSubjectStats{
		Total:      total,
		Present:    present,
		Percentage: percentage(present, total),
	}, nil
}

// CalendarBuckets splits a student's semester dates into disjoint present
// and absent sets. When a date carries mixed statuses across periods the
// last written row decides the bucket; rows arrive in write order.
func (s *AggregatorService) CalendarBuckets(ctx context.Context, studentID, semesterID string) (*models.CalendarBuckets, error) {
	if studentID == "" || semesterID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id and semester id required")
	}
	rows, err := s.repo.CalendarRows(ctx, studentID, semesterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load calendar rows")
	}

	byDate := make(map[string]models.AttendanceStatus, len(rows))
	for _, row := range rows {
		byDate[row.Date.Format(dateLayout)] = row.Status
	}

	buckets := &models.CalendarBuckets{
		PresentDates: make([]string, 0, len(byDate)),
		AbsentDates:  make([]string, 0),
	}
	for date, status := range byDate {
		if status == models.AttendanceStatusPresent {
			buckets.PresentDates = append(buckets.PresentDates, date)
		} else {
			buckets.AbsentDates = append(buckets.AbsentDates, date)
		}
	}
	sort.Strings(buckets.PresentDates)
	sort.Strings(buckets.AbsentDates)
	return buckets, nil
}

// GroupedStatsBySubject returns one row per subject the student has at
// least one record for within the semester.
func (s *AggregatorService) GroupedStatsBySubject(ctx context.Context, studentID, semesterID string) ([]models.SubjectStats, error) {
	if studentID == "" || semesterID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id and semester id required")
	}
	rows, err := s.repo.SubjectGroupCounts(ctx, studentID, semesterID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to group attendance by subject")
	}
	for i := range rows {
		rows[i].Percentage = percentage(rows[i].Present, rows[i].Total)
	}
	return rows, nil
}

func percentage(present, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}
