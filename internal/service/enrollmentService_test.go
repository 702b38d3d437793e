package service

import (
	"context"
	"testing"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCourseRepo struct {
	courses map[int64]*entity.Course
}

func (r *fakeCourseRepo) GetAllActive(_ context.Context) ([]*entity.CourseListing, error) {
	return nil, nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id int64) (*entity.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, entity.ErrCourseNotFound
	}
	return c, nil
}

type trackingEnrollmentRepo struct {
	fakeEnrollmentRepo
	enrollment  *entity.Enrollment
	active      *entity.Enrollment
	activeCount int
	created     *entity.Enrollment

	lastProgress    int
	lastStatus      entity.EnrollmentStatus
	lastCompletedAt *time.Time
}

func (r *trackingEnrollmentRepo) GetByID(_ context.Context, id int64) (*entity.Enrollment, error) {
	if r.enrollment == nil || r.enrollment.ID != id {
		return nil, entity.ErrEnrollmentNotFound
	}
	cp := *r.enrollment
	return &cp, nil
}

func (r *trackingEnrollmentRepo) GetActiveByUserAndCourse(_ context.Context, _, _ int64) (*entity.Enrollment, error) {
	if r.active == nil {
		return nil, entity.ErrEnrollmentNotFound
	}
	return r.active, nil
}

func (r *trackingEnrollmentRepo) CountActiveByCourse(_ context.Context, _ int64) (int, error) {
	return r.activeCount, nil
}

func (r *trackingEnrollmentRepo) Create(_ context.Context, e *entity.Enrollment) error {
	e.ID = 77
	r.created = e
	return nil
}

func (r *trackingEnrollmentRepo) UpdateProgress(_ context.Context, _ int64, progress int, status entity.EnrollmentStatus, completedAt *time.Time) error {
	r.lastProgress = progress
	r.lastStatus = status
	r.lastCompletedAt = completedAt
	return nil
}

func TestEnroll(t *testing.T) {
	course := &entity.Course{ID: 1, Name: "DJ Basics", TotalLessons: 10, MaxStudents: 2, IsActive: true}

	tests := []struct {
		name    string
		repo    *trackingEnrollmentRepo
		course  *entity.Course
		wantErr error
	}{
		{
			name:   "success",
			repo:   &trackingEnrollmentRepo{},
			course: course,
		},
		{
			name:    "inactive course",
			repo:    &trackingEnrollmentRepo{},
			course:  &entity.Course{ID: 1, IsActive: false},
			wantErr: entity.ErrCourseInactive,
		},
		{
			name:    "already enrolled",
			repo:    &trackingEnrollmentRepo{active: &entity.Enrollment{ID: 5}},
			course:  course,
			wantErr: entity.ErrAlreadyEnrolled,
		},
		{
			name:    "course full",
			repo:    &trackingEnrollmentRepo{activeCount: 2},
			course:  course,
			wantErr: entity.ErrCourseFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courseRepo := &fakeCourseRepo{courses: map[int64]*entity.Course{1: tt.course}}
			s := NewEnrollmentService(tt.repo, &stubCompletionRepo{}, courseRepo)
			s.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

			enrollment, err := s.Enroll(context.Background(), 42, 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(77), enrollment.ID)
			assert.Equal(t, entity.EnrollmentStatusActive, enrollment.Status)
			assert.Equal(t, int64(42), enrollment.UserID)
		})
	}
}

type summaryEnrollmentRepo struct {
	fakeEnrollmentRepo
	summaries []*entity.EnrollmentSummary
}

func (r *summaryEnrollmentRepo) ListSummariesByUser(_ context.Context, _ int64) ([]*entity.EnrollmentSummary, error) {
	return r.summaries, nil
}

func TestListUserEnrollments(t *testing.T) {
	repo := &summaryEnrollmentRepo{summaries: []*entity.EnrollmentSummary{
		{ID: 9, CourseID: 100, CourseName: "DJ Foundations", TotalLessons: 8, CompletedLessons: 2, ProgressPercentage: 25},
	}}
	s := NewEnrollmentService(repo, &stubCompletionRepo{}, &fakeCourseRepo{})

	summaries, err := s.ListUserEnrollments(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "DJ Foundations", summaries[0].CourseName)
	assert.Equal(t, 2, summaries[0].CompletedLessons)

	sEmpty := NewEnrollmentService(&summaryEnrollmentRepo{}, &stubCompletionRepo{}, &fakeCourseRepo{})
	empty, err := sEmpty.ListUserEnrollments(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCompleteLessonRecomputesProgress(t *testing.T) {
	course := &entity.Course{ID: 1, TotalLessons: 4, IsActive: true}

	tests := []struct {
		name           string
		status         entity.EnrollmentStatus
		completedCount int
		wantProgress   int
		wantStatus     entity.EnrollmentStatus
		wantCompleted  bool
	}{
		{
			name:           "partial progress",
			status:         entity.EnrollmentStatusActive,
			completedCount: 1,
			wantProgress:   25,
			wantStatus:     entity.EnrollmentStatusActive,
		},
		{
			name:           "rounding",
			status:         entity.EnrollmentStatusActive,
			completedCount: 3,
			wantProgress:   75,
			wantStatus:     entity.EnrollmentStatusActive,
		},
		{
			name:           "all lessons flips to completed",
			status:         entity.EnrollmentStatusActive,
			completedCount: 4,
			wantProgress:   100,
			wantStatus:     entity.EnrollmentStatusCompleted,
			wantCompleted:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &trackingEnrollmentRepo{
				enrollment: &entity.Enrollment{ID: 9, UserID: 42, CourseID: 1, Status: tt.status},
			}
			completionRepo := &stubCompletionRepo{count: tt.completedCount}
			courseRepo := &fakeCourseRepo{courses: map[int64]*entity.Course{1: course}}

			s := NewEnrollmentService(repo, completionRepo, courseRepo)
			s.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

			progress, err := s.CompleteLesson(context.Background(), &LessonCompletionRequest{
				EnrollmentID: 9,
				LessonNumber: 1,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantProgress, progress.ProgressPercentage)
			assert.Equal(t, tt.completedCount, progress.CompletedLessons)
			assert.Equal(t, 4, progress.TotalLessons)
			assert.Equal(t, tt.wantStatus, repo.lastStatus)
			assert.Equal(t, tt.wantCompleted, repo.lastCompletedAt != nil)
		})
	}
}

func TestCompleteLessonRejectsBadLessonNumber(t *testing.T) {
	repo := &trackingEnrollmentRepo{
		enrollment: &entity.Enrollment{ID: 9, CourseID: 1, Status: entity.EnrollmentStatusActive},
	}
	courseRepo := &fakeCourseRepo{courses: map[int64]*entity.Course{1: {ID: 1, TotalLessons: 4}}}
	s := NewEnrollmentService(repo, &stubCompletionRepo{}, courseRepo)

	for _, lesson := range []int{0, 5} {
		_, err := s.CompleteLesson(context.Background(), &LessonCompletionRequest{
			EnrollmentID: 9,
			LessonNumber: lesson,
		})
		assert.ErrorIs(t, err, entity.ErrInvalidLessonNumber)
	}
}

func TestUncompleteLessonRevertsCompletedStatus(t *testing.T) {
	completedAt := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := &trackingEnrollmentRepo{
		enrollment: &entity.Enrollment{
			ID:          9,
			CourseID:    1,
			Status:      entity.EnrollmentStatusCompleted,
			CompletedAt: &completedAt,
		},
	}
	completionRepo := &stubCompletionRepo{count: 3}
	courseRepo := &fakeCourseRepo{courses: map[int64]*entity.Course{1: {ID: 1, TotalLessons: 4}}}

	s := NewEnrollmentService(repo, completionRepo, courseRepo)
	progress, err := s.UncompleteLesson(context.Background(), &LessonCompletionRequest{
		EnrollmentID: 9,
		LessonNumber: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, [2]int64{9, 4}, completionRepo.deleted[0])
	assert.Equal(t, 75, progress.ProgressPercentage)
	assert.Equal(t, entity.EnrollmentStatusActive, repo.lastStatus)
	assert.Nil(t, repo.lastCompletedAt)
}
