package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	repository "github.com/eboniejc/muse-app/internal/database/postgres"
	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduleRepo is an in-memory LessonScheduleRepository.
type fakeScheduleRepo struct {
	byID    map[int64]*entity.LessonSchedule
	nextID  int64
	creates int
	updates int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{byID: make(map[int64]*entity.LessonSchedule), nextID: 1}
}

func (r *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*entity.LessonSchedule, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrScheduleNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeScheduleRepo) GetByEnrollmentAndLesson(_ context.Context, enrollmentID int64, lessonNumber int) (*entity.LessonSchedule, error) {
	for _, s := range r.byID {
		if s.EnrollmentID == enrollmentID && s.LessonNumber == lessonNumber {
			cp := *s
			return &cp, nil
		}
	}
	return nil, entity.ErrScheduleNotFound
}

func (r *fakeScheduleRepo) Create(_ context.Context, schedule *entity.LessonSchedule) error {
	for _, s := range r.byID {
		if s.EnrollmentID == schedule.EnrollmentID && s.LessonNumber == schedule.LessonNumber {
			return entity.ErrDuplicateSchedule
		}
	}
	schedule.ID = r.nextID
	r.nextID++
	cp := *schedule
	r.byID[schedule.ID] = &cp
	r.creates++
	return nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, schedule *entity.LessonSchedule) error {
	if _, ok := r.byID[schedule.ID]; !ok {
		return entity.ErrScheduleNotFound
	}
	cp := *schedule
	r.byID[schedule.ID] = &cp
	r.updates++
	return nil
}

func (r *fakeScheduleRepo) ListUpcomingByUser(_ context.Context, _ int64, _ time.Time) ([]*entity.UpcomingLesson, error) {
	return nil, nil
}

// fakeEnrollmentRepo resolves every enrollment to user 42.
type fakeEnrollmentRepo struct {
	missing map[int64]bool
}

func (r *fakeEnrollmentRepo) GetByID(_ context.Context, id int64) (*entity.Enrollment, error) {
	if r.missing[id] {
		return nil, entity.ErrEnrollmentNotFound
	}
	return &entity.Enrollment{ID: id, UserID: 42, CourseID: 1, Status: entity.EnrollmentStatusActive}, nil
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, _ *entity.Enrollment) error { return nil }
func (r *fakeEnrollmentRepo) GetActiveByUserAndCourse(_ context.Context, _, _ int64) (*entity.Enrollment, error) {
	return nil, entity.ErrEnrollmentNotFound
}
func (r *fakeEnrollmentRepo) CountActiveByCourse(_ context.Context, _ int64) (int, error) {
	return 0, nil
}
func (r *fakeEnrollmentRepo) ListByUser(_ context.Context, _ int64, _ []entity.EnrollmentStatus) ([]*entity.Enrollment, error) {
	return nil, nil
}
func (r *fakeEnrollmentRepo) ListDetails(_ context.Context, _ *repository.EnrollmentFilter) ([]*entity.EnrollmentDetails, error) {
	return nil, nil
}
func (r *fakeEnrollmentRepo) ListSummariesByUser(_ context.Context, _ int64) ([]*entity.EnrollmentSummary, error) {
	return nil, nil
}
func (r *fakeEnrollmentRepo) UpdateProgress(_ context.Context, _ int64, _ int, _ entity.EnrollmentStatus, _ *time.Time) error {
	return nil
}

// fakePushGateway records calls in order.
type fakePushGateway struct {
	calls      []string
	nextHandle int
	failNext   bool
}

func (g *fakePushGateway) Schedule(_ context.Context, n *PushNotification) (string, error) {
	if g.failNext {
		g.calls = append(g.calls, "schedule:error")
		return "", fmt.Errorf("gateway down")
	}
	g.nextHandle++
	handle := fmt.Sprintf("notif-%d", g.nextHandle)
	g.calls = append(g.calls, "schedule:"+handle)
	return handle, nil
}

func (g *fakePushGateway) Cancel(_ context.Context, id string) (bool, error) {
	g.calls = append(g.calls, "cancel:"+id)
	return true, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestReconciler(repo *fakeScheduleRepo, push *fakePushGateway, now time.Time) *reconcileService {
	s := NewReconcileService(repo, &fakeEnrollmentRepo{}, push, testLogger())
	s.now = func() time.Time { return now }
	return s
}

func scheduleRow(enrollmentID int64, lessonNumber int, scheduledAt time.Time) map[string]any {
	return map[string]any{
		"enrollmentId": float64(enrollmentID),
		"lessonNumber": float64(lessonNumber),
		"scheduledAt":  scheduledAt.Format(time.RFC3339),
	}
}

func TestReconcileNewSchedule(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	push := &fakePushGateway{}
	s := newTestReconciler(repo, push, now)

	lessonAt := now.Add(48 * time.Hour)
	result, err := s.ReconcileRows(context.Background(), []map[string]any{
		scheduleRow(10, 1, lessonAt),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, 0, repo.updates)

	stored, err := repo.GetByEnrollmentAndLesson(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, "notif-1", stored.Notification24hID)
	assert.Equal(t, "notif-2", stored.Notification1hID)

	// New record books reminders without cancelling anything.
	assert.Equal(t, []string{"schedule:notif-1", "schedule:notif-2"}, push.calls)
}

func TestReconcileRejectsNonPositiveIdentifiers(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	push := &fakePushGateway{}
	s := newTestReconciler(repo, push, now)

	lessonAt := now.Add(48 * time.Hour)
	result, err := s.ReconcileRows(context.Background(), []map[string]any{
		scheduleRow(-5, 1, lessonAt),
		scheduleRow(10, -2, lessonAt),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	require.Len(t, result.Skipped, 2)
	assert.Equal(t, 0, result.Skipped[0].Index)
	assert.Equal(t, 1, result.Skipped[1].Index)
	assert.Equal(t, 0, repo.creates)
	assert.Empty(t, push.calls)
}

func TestReconcileUnchangedTimeIsNoOp(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	push := &fakePushGateway{}
	s := newTestReconciler(repo, push, now)

	lessonAt := now.Add(48 * time.Hour)
	rows := []map[string]any{scheduleRow(10, 1, lessonAt)}

	_, err := s.ReconcileRows(context.Background(), rows)
	require.NoError(t, err)
	firstCalls := len(push.calls)

	// Same instant, different wire format.
	rows[0]["scheduledAt"] = lessonAt.Format(time.RFC3339Nano)
	result, err := s.ReconcileRows(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	assert.Len(t, push.calls, firstCalls, "unchanged time must not touch the gateway")

	stored, err := repo.GetByEnrollmentAndLesson(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, "notif-1", stored.Notification24hID)
	assert.Equal(t, "notif-2", stored.Notification1hID)
}

func TestReconcileTimeChangeCancelsBeforeScheduling(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	push := &fakePushGateway{}
	s := newTestReconciler(repo, push, now)

	lessonAt := now.Add(48 * time.Hour)
	_, err := s.ReconcileRows(context.Background(), []map[string]any{scheduleRow(10, 1, lessonAt)})
	require.NoError(t, err)
	push.calls = nil

	moved := lessonAt.Add(2 * time.Hour)
	result, err := s.ReconcileRows(context.Background(), []map[string]any{scheduleRow(10, 1, moved)})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)

	require.Len(t, push.calls, 4)
	assert.Equal(t, "cancel:notif-1", push.calls[0])
	assert.Equal(t, "cancel:notif-2", push.calls[1])
	assert.Equal(t, "schedule:notif-3", push.calls[2])
	assert.Equal(t, "schedule:notif-4", push.calls[3])

	stored, err := repo.GetByEnrollmentAndLesson(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Equal(t, moved, stored.ScheduledAt)
	assert.Equal(t, "notif-3", stored.Notification24hID)
	assert.Equal(t, "notif-4", stored.Notification1hID)
}

func TestReconcileFutureOnlyWindows(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		offset        time.Duration
		wantSchedules int
		want24h       bool
		want1h        bool
	}{
		{name: "30 minutes out books nothing", offset: 30 * time.Minute},
		{name: "2 hours out books only the 1h reminder", offset: 2 * time.Hour, wantSchedules: 1, want1h: true},
		{name: "48 hours out books both reminders", offset: 48 * time.Hour, wantSchedules: 2, want24h: true, want1h: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeScheduleRepo()
			push := &fakePushGateway{}
			s := newTestReconciler(repo, push, now)

			result, err := s.ReconcileRows(context.Background(), []map[string]any{
				scheduleRow(10, 1, now.Add(tt.offset)),
			})
			require.NoError(t, err)
			assert.Equal(t, 1, result.Count)
			assert.Len(t, push.calls, tt.wantSchedules)

			stored, err := repo.GetByEnrollmentAndLesson(context.Background(), 10, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want24h, stored.Notification24hID != "")
			assert.Equal(t, tt.want1h, stored.Notification1hID != "")
		})
	}
}

func TestReconcileInvalidRowIsolation(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	push := &fakePushGateway{}
	s := newTestReconciler(repo, push, now)

	lessonAt := now.Add(48 * time.Hour)
	rows := []map[string]any{
		scheduleRow(10, 1, lessonAt),
		scheduleRow(10, 2, lessonAt),
		{"enrollmentId": float64(10), "lessonNumber": float64(3)}, // no scheduledAt
		scheduleRow(10, 4, lessonAt),
		scheduleRow(10, 5, lessonAt),
	}

	result, err := s.ReconcileRows(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Count)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 2, result.Skipped[0].Index)
	assert.Equal(t, 4, repo.creates)
}

func TestReconcileIdempotentReimport(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	push := &fakePushGateway{}
	s := newTestReconciler(repo, push, now)

	lessonAt := now.Add(48 * time.Hour)
	rows := []map[string]any{
		scheduleRow(10, 1, lessonAt),
		scheduleRow(11, 1, lessonAt),
	}

	_, err := s.ReconcileRows(context.Background(), rows)
	require.NoError(t, err)

	before := make(map[int64]entity.LessonSchedule)
	for id, sch := range repo.byID {
		before[id] = *sch
	}
	callsBefore := len(push.calls)

	result, err := s.ReconcileRows(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
	assert.Len(t, push.calls, callsBefore, "re-import of identical batch must not call the gateway")
	for id, sch := range repo.byID {
		assert.Equal(t, before[id], *sch)
	}
}

func TestReconcileGatewayFailureLeavesHandleEmpty(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	push := &fakePushGateway{failNext: true}
	s := newTestReconciler(repo, push, now)

	result, err := s.ReconcileRows(context.Background(), []map[string]any{
		scheduleRow(10, 1, now.Add(48 * time.Hour)),
	})
	require.NoError(t, err)

	// The row itself still lands.
	assert.Equal(t, 1, result.Count)
	stored, err := repo.GetByEnrollmentAndLesson(context.Background(), 10, 1)
	require.NoError(t, err)
	assert.Empty(t, stored.Notification24hID)
	assert.Empty(t, stored.Notification1hID)
}

func TestReconcileMissingEnrollmentStillUpserts(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	push := &fakePushGateway{}
	s := NewReconcileService(repo, &fakeEnrollmentRepo{missing: map[int64]bool{99: true}}, push, testLogger())
	s.now = func() time.Time { return now }

	result, err := s.ReconcileRows(context.Background(), []map[string]any{
		scheduleRow(99, 1, now.Add(48 * time.Hour)),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
	assert.Empty(t, push.calls)

	stored, err := repo.GetByEnrollmentAndLesson(context.Background(), 99, 1)
	require.NoError(t, err)
	assert.Empty(t, stored.Notification24hID)
	assert.Empty(t, stored.Notification1hID)
}

func TestReconcileLookupByIDThenNaturalKey(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeScheduleRepo()
	push := &fakePushGateway{}
	s := newTestReconciler(repo, push, now)

	lessonAt := now.Add(48 * time.Hour)
	_, err := s.ReconcileRows(context.Background(), []map[string]any{scheduleRow(10, 1, lessonAt)})
	require.NoError(t, err)

	// Same row addressed by id with the same time: still a no-op.
	row := scheduleRow(10, 1, lessonAt)
	row["id"] = float64(1)
	callsBefore := len(push.calls)

	result, err := s.ReconcileRows(context.Background(), []map[string]any{row})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
	assert.Len(t, push.calls, callsBefore)
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, 1, repo.updates)
}
