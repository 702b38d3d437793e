package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/eboniejc/muse-app/internal/database/postgres"
	"github.com/eboniejc/muse-app/internal/entity"
)

type lessonService struct {
	scheduleRepo repository.LessonScheduleRepository
	now          func() time.Time
}

func NewLessonService(scheduleRepo repository.LessonScheduleRepository) *lessonService {
	return &lessonService{
		scheduleRepo: scheduleRepo,
		now:          time.Now,
	}
}

// UpcomingLessons lists the student's future scheduled lessons across their
// active and completed enrollments, soonest first.
func (s *lessonService) UpcomingLessons(ctx context.Context, userID int64) ([]*entity.UpcomingLesson, error) {
	lessons, err := s.scheduleRepo.ListUpcomingByUser(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming lessons: %w", err)
	}
	return lessons, nil
}
