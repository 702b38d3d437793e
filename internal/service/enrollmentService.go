package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	repository "github.com/eboniejc/muse-app/internal/database/postgres"
	"github.com/eboniejc/muse-app/internal/entity"
)

type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	completionRepo repository.LessonCompletionRepository
	courseRepo     repository.CourseRepository
	now            func() time.Time
}

func NewEnrollmentService(
	enrollmentRepo repository.EnrollmentRepository,
	completionRepo repository.LessonCompletionRepository,
	courseRepo repository.CourseRepository,
) *enrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		completionRepo: completionRepo,
		courseRepo:     courseRepo,
		now:            time.Now,
	}
}

// Enroll signs a student up for a course. The course must be active, the
// student must not hold an active or paused enrollment for it, and a
// max-students limit counts only active enrollments.
func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID int64) (*entity.Enrollment, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsActive {
		return nil, entity.ErrCourseInactive
	}

	existing, err := s.enrollmentRepo.GetActiveByUserAndCourse(ctx, userID, courseID)
	if err != nil && !errors.Is(err, entity.ErrEnrollmentNotFound) {
		return nil, fmt.Errorf("failed to check existing enrollment: %w", err)
	}
	if existing != nil {
		return nil, entity.ErrAlreadyEnrolled
	}

	if course.MaxStudents > 0 {
		active, err := s.enrollmentRepo.CountActiveByCourse(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to count enrollments: %w", err)
		}
		if active >= course.MaxStudents {
			return nil, entity.ErrCourseFull
		}
	}

	enrollment := &entity.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     entity.EnrollmentStatusActive,
		EnrolledAt: s.now(),
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	return enrollment, nil
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, filter *EnrollmentListFilter) ([]*entity.EnrollmentDetails, error) {
	repoFilter := &repository.EnrollmentFilter{}
	if filter != nil {
		repoFilter.CourseID = filter.CourseID
		repoFilter.Status = filter.Status
	}

	details, err := s.enrollmentRepo.ListDetails(ctx, repoFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	if len(details) == 0 {
		return details, nil
	}

	ids := make([]int64, 0, len(details))
	byID := make(map[int64]*entity.EnrollmentDetails, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		byID[d.ID] = d
	}

	completions, err := s.completionRepo.ListByEnrollments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson completions: %w", err)
	}
	for _, c := range completions {
		if d, ok := byID[c.EnrollmentID]; ok {
			d.Completions = append(d.Completions, *c)
		}
	}

	return details, nil
}

// ListUserEnrollments returns the student's own dashboard listing, newest
// first.
func (s *enrollmentService) ListUserEnrollments(ctx context.Context, userID int64) ([]*entity.EnrollmentSummary, error) {
	summaries, err := s.enrollmentRepo.ListSummariesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	if summaries == nil {
		summaries = []*entity.EnrollmentSummary{}
	}
	return summaries, nil
}

// CompleteLesson marks one lesson done for an enrollment and recomputes the
// progress. Marking the same lesson twice is a no-op.
func (s *enrollmentService) CompleteLesson(ctx context.Context, req *LessonCompletionRequest) (*entity.EnrollmentProgress, error) {
	enrollment, course, err := s.loadEnrollmentCourse(ctx, req.EnrollmentID)
	if err != nil {
		return nil, err
	}
	if req.LessonNumber < 1 || req.LessonNumber > course.TotalLessons {
		return nil, entity.ErrInvalidLessonNumber
	}

	if err := s.completionRepo.Create(ctx, req.EnrollmentID, req.LessonNumber); err != nil {
		return nil, fmt.Errorf("failed to record lesson completion: %w", err)
	}

	return s.recomputeProgress(ctx, enrollment, course)
}

// UncompleteLesson removes a completion and recomputes the progress, flipping
// a completed enrollment back to active when it drops below 100%.
func (s *enrollmentService) UncompleteLesson(ctx context.Context, req *LessonCompletionRequest) (*entity.EnrollmentProgress, error) {
	enrollment, course, err := s.loadEnrollmentCourse(ctx, req.EnrollmentID)
	if err != nil {
		return nil, err
	}

	if err := s.completionRepo.Delete(ctx, req.EnrollmentID, req.LessonNumber); err != nil {
		return nil, fmt.Errorf("failed to remove lesson completion: %w", err)
	}

	return s.recomputeProgress(ctx, enrollment, course)
}

func (s *enrollmentService) loadEnrollmentCourse(ctx context.Context, enrollmentID int64) (*entity.Enrollment, *entity.Course, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, nil, err
	}
	course, err := s.courseRepo.GetByID(ctx, enrollment.CourseID)
	if err != nil {
		return nil, nil, err
	}
	return enrollment, course, nil
}

func (s *enrollmentService) recomputeProgress(ctx context.Context, enrollment *entity.Enrollment, course *entity.Course) (*entity.EnrollmentProgress, error) {
	completed, err := s.completionRepo.CountByEnrollment(ctx, enrollment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completions: %w", err)
	}

	progress := 0
	if course.TotalLessons > 0 {
		progress = int(math.Min(100, math.Round(float64(completed)/float64(course.TotalLessons)*100)))
	}

	status := enrollment.Status
	completedAt := enrollment.CompletedAt
	switch {
	case completed >= course.TotalLessons && course.TotalLessons > 0 &&
		status == entity.EnrollmentStatusActive:
		status = entity.EnrollmentStatusCompleted
		now := s.now()
		completedAt = &now
	case completed < course.TotalLessons && status == entity.EnrollmentStatusCompleted:
		status = entity.EnrollmentStatusActive
		completedAt = nil
	}

	if err := s.enrollmentRepo.UpdateProgress(ctx, enrollment.ID, progress, status, completedAt); err != nil {
		return nil, fmt.Errorf("failed to update enrollment progress: %w", err)
	}

	return &entity.EnrollmentProgress{
		CompletedLessons:   completed,
		TotalLessons:       course.TotalLessons,
		ProgressPercentage: progress,
	}, nil
}
