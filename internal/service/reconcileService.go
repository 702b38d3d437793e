package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	repository "github.com/eboniejc/muse-app/internal/database/postgres"
	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/sirupsen/logrus"
)

// reconcileService keeps lesson schedules and their pending push reminders
// consistent with incoming spreadsheet rows. For every row it decides whether
// the scheduled time moved, cancels reminders that point at the stale time,
// and books new ones 24 hours and 1 hour ahead of the fresh time when those
// moments are still in the future.
type reconcileService struct {
	scheduleRepo   repository.LessonScheduleRepository
	enrollmentRepo repository.EnrollmentRepository
	push           PushGateway
	logger         *logrus.Logger
	now            func() time.Time
}

func NewReconcileService(
	scheduleRepo repository.LessonScheduleRepository,
	enrollmentRepo repository.EnrollmentRepository,
	push PushGateway,
	logger *logrus.Logger,
) *reconcileService {
	return &reconcileService{
		scheduleRepo:   scheduleRepo,
		enrollmentRepo: enrollmentRepo,
		push:           push,
		logger:         logger,
		now:            time.Now,
	}
}

// ReconcileRows processes a batch of raw schedule rows. Rows are independent:
// a bad or failing row is recorded as skipped and the rest continue.
func (s *reconcileService) ReconcileRows(ctx context.Context, rows []map[string]any) (*entity.ImportResult, error) {
	result := &entity.ImportResult{Success: true}

	for i, raw := range rows {
		row, err := normalizeScheduleRow(raw)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"index":  i,
				"reason": err.Error(),
			}).Warn("skipping invalid lesson schedule row")
			result.Skipped = append(result.Skipped, entity.SkippedRow{Index: i, Reason: err.Error()})
			continue
		}

		if err := s.reconcileRow(ctx, row, false); err != nil {
			s.logger.WithFields(logrus.Fields{
				"index":         i,
				"enrollment_id": row.EnrollmentID,
				"lesson_number": row.LessonNumber,
			}).WithError(err).Error("failed to reconcile lesson schedule row")
			result.Skipped = append(result.Skipped, entity.SkippedRow{Index: i, Reason: err.Error()})
			continue
		}
		result.Count++
	}

	return result, nil
}

// reconcileRow handles one normalized row. retried marks the second attempt
// after a unique-constraint collision, which forces the natural-key lookup.
func (s *reconcileService) reconcileRow(ctx context.Context, row *entity.ScheduleRow, retried bool) error {
	existing, err := s.findExisting(ctx, row, retried)
	if err != nil {
		return err
	}

	timeChanged := existing == nil || !existing.ScheduledAt.Equal(row.ScheduledAt)

	// Carry the stored handles forward; the sheet's copies are ignored so
	// the gateway state stays authoritative.
	next := &entity.LessonSchedule{
		EnrollmentID: row.EnrollmentID,
		LessonNumber: row.LessonNumber,
		ScheduledAt:  row.ScheduledAt,
	}
	if existing != nil {
		next.ID = existing.ID
		next.Notification24hID = existing.Notification24hID
		next.Notification1hID = existing.Notification1hID
	}

	if timeChanged && existing != nil {
		s.cancelStaleReminders(ctx, existing, next)
	}

	if timeChanged {
		s.scheduleReminders(ctx, next)
	}

	if existing != nil {
		return s.scheduleRepo.Update(ctx, next)
	}

	err = s.scheduleRepo.Create(ctx, next)
	if errors.Is(err, entity.ErrDuplicateSchedule) && !retried {
		// Another writer created the (enrollment, lesson) pair between our
		// lookup and insert. Redo against the winner's record.
		return s.reconcileRow(ctx, row, true)
	}
	return err
}

func (s *reconcileService) findExisting(ctx context.Context, row *entity.ScheduleRow, naturalKeyOnly bool) (*entity.LessonSchedule, error) {
	if row.ID != 0 && !naturalKeyOnly {
		existing, err := s.scheduleRepo.GetByID(ctx, row.ID)
		if errors.Is(err, entity.ErrScheduleNotFound) {
			return nil, nil
		}
		return existing, err
	}

	existing, err := s.scheduleRepo.GetByEnrollmentAndLesson(ctx, row.EnrollmentID, row.LessonNumber)
	if errors.Is(err, entity.ErrScheduleNotFound) {
		return nil, nil
	}
	return existing, err
}

// cancelStaleReminders cancels any reminder still aimed at the old time and
// clears the handle regardless of the gateway outcome, so a stale handle
// never survives a time change.
func (s *reconcileService) cancelStaleReminders(ctx context.Context, existing, next *entity.LessonSchedule) {
	if existing.Notification24hID != "" {
		if _, err := s.push.Cancel(ctx, existing.Notification24hID); err != nil {
			s.logger.WithField("notification_id", existing.Notification24hID).
				WithError(err).Warn("failed to cancel 24h reminder")
		}
		next.Notification24hID = ""
	}
	if existing.Notification1hID != "" {
		if _, err := s.push.Cancel(ctx, existing.Notification1hID); err != nil {
			s.logger.WithField("notification_id", existing.Notification1hID).
				WithError(err).Warn("failed to cancel 1h reminder")
		}
		next.Notification1hID = ""
	}
}

// scheduleReminders books the 24h and 1h reminders for the new time. Each
// window is booked only while it is still strictly in the future, and a
// gateway failure just leaves that handle empty.
func (s *reconcileService) scheduleReminders(ctx context.Context, next *entity.LessonSchedule) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, next.EnrollmentID)
	if err != nil {
		if !errors.Is(err, entity.ErrEnrollmentNotFound) {
			s.logger.WithField("enrollment_id", next.EnrollmentID).
				WithError(err).Warn("failed to resolve enrollment for reminders")
		}
		return
	}

	userID := strconv.FormatInt(enrollment.UserID, 10)
	now := s.now()

	if at := next.ScheduledAt.Add(-24 * time.Hour); at.After(now) {
		id, err := s.push.Schedule(ctx, &PushNotification{
			Headings: map[string]string{
				"en": "Class Tomorrow!",
				"vi": "Lớp học ngày mai!",
			},
			Contents: map[string]string{
				"en": fmt.Sprintf("You have a class scheduled tomorrow at %s", next.ScheduledAt.Format("15:04")),
				"vi": fmt.Sprintf("Bạn có lớp học vào ngày mai lúc %s", next.ScheduledAt.Format("15:04")),
			},
			ExternalUserID: userID,
			SendAfter:      at,
		})
		if err != nil {
			s.logger.WithField("enrollment_id", next.EnrollmentID).
				WithError(err).Warn("failed to schedule 24h reminder")
		} else if id != "" {
			next.Notification24hID = id
		}
	}

	if at := next.ScheduledAt.Add(-time.Hour); at.After(now) {
		id, err := s.push.Schedule(ctx, &PushNotification{
			Headings: map[string]string{
				"en": "Class in 1 Hour!",
				"vi": "Lớp học trong 1 giờ nữa!",
			},
			Contents: map[string]string{
				"en": "Your class starts in 1 hour!",
				"vi": "Lớp học của bạn bắt đầu trong 1 giờ nữa!",
			},
			ExternalUserID: userID,
			SendAfter:      at,
		})
		if err != nil {
			s.logger.WithField("enrollment_id", next.EnrollmentID).
				WithError(err).Warn("failed to schedule 1h reminder")
		} else if id != "" {
			next.Notification1hID = id
		}
	}
}
