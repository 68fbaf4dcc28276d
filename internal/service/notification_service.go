package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campuskit/attendance-api/internal/models"
	"github.com/campuskit/attendance-api/pkg/jobs"
)

// Sender delivers a notification over some transport.
type Sender interface {
	Send(ctx context.Context, n models.Notification) error
}

// logSender is the default transport: it records deliveries in the
// application log. Real transports (push, email) plug in behind the
// same interface.
type logSender struct {
	logger *zap.Logger
}

func (s logSender) Send(_ context.Context, n models.Notification) error {
	s.logger.Info("notification delivered",
		zap.String("user_id", n.UserID),
		zap.String("title", n.Title),
	)
	return nil
}

// NotificationService fans notifications out through a background worker
// pool. Dispatch never blocks the caller; when the buffer is full the
// notification is dropped and logged.
type NotificationService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewNotificationService builds the dispatcher on top of an in-memory
// queue. A nil sender falls back to log-only delivery.
func NewNotificationService(sender Sender, cfg jobs.QueueConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sender == nil {
		sender = logSender{logger: logger}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger
	}

	handler := func(ctx context.Context, job jobs.Job) error {
		n, ok := job.Payload.(models.Notification)
		if !ok {
			logger.Error("unexpected notification payload", zap.String("job_id", job.ID))
			return nil
		}
		return sender.Send(ctx, n)
	}

	return &NotificationService{
		queue:  jobs.NewQueue("notifications", handler, cfg),
		logger: logger,
	}
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Dispatch enqueues a notification without blocking. Drops are logged
// and otherwise invisible to the caller.
func (s *NotificationService) Dispatch(n models.Notification) {
	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    "notification",
		Payload: n,
	}
	if !s.queue.TryEnqueue(job) {
		s.logger.Warn("notification dropped, queue unavailable",
			zap.String("user_id", n.UserID),
			zap.String("title", n.Title),
		)
	}
}
