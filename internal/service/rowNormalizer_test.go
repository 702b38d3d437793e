package service

import (
	"testing"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScheduleRow(t *testing.T) {
	wantTime := time.Date(2025, 3, 2, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		row  map[string]any
		want *entity.ScheduleRow
	}{
		{
			name: "camelCase keys with JSON numbers",
			row: map[string]any{
				"enrollmentId": float64(7),
				"lessonNumber": float64(3),
				"scheduledAt":  "2025-03-02T15:30:00Z",
			},
			want: &entity.ScheduleRow{EnrollmentID: 7, LessonNumber: 3, ScheduledAt: wantTime},
		},
		{
			name: "snake_case keys",
			row: map[string]any{
				"enrollment_id": float64(7),
				"lesson_number": float64(3),
				"scheduled_at":  "2025-03-02T15:30:00Z",
			},
			want: &entity.ScheduleRow{EnrollmentID: 7, LessonNumber: 3, ScheduledAt: wantTime},
		},
		{
			name: "numbers as strings",
			row: map[string]any{
				"enrollmentId": "7",
				"lessonNumber": "3",
				"scheduledAt":  "2025-03-02 15:30:00",
			},
			want: &entity.ScheduleRow{EnrollmentID: 7, LessonNumber: 3, ScheduledAt: wantTime},
		},
		{
			name: "optional id and handles carried through",
			row: map[string]any{
				"id":                float64(12),
				"enrollmentId":      float64(7),
				"lessonNumber":      float64(3),
				"scheduledAt":       "2025-03-02T15:30:00Z",
				"notification24hId": "abc",
				"notification1hId":  "def",
			},
			want: &entity.ScheduleRow{
				ID: 12, EnrollmentID: 7, LessonNumber: 3, ScheduledAt: wantTime,
				Notification24hID: "abc", Notification1hID: "def",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeScheduleRow(tt.row)
			require.NoError(t, err)
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.EnrollmentID, got.EnrollmentID)
			assert.Equal(t, tt.want.LessonNumber, got.LessonNumber)
			assert.True(t, tt.want.ScheduledAt.Equal(got.ScheduledAt))
			assert.Equal(t, tt.want.Notification24hID, got.Notification24hID)
			assert.Equal(t, tt.want.Notification1hID, got.Notification1hID)
		})
	}
}

func TestNormalizeScheduleRowRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]any
	}{
		{name: "missing enrollmentId", row: map[string]any{"lessonNumber": float64(1), "scheduledAt": "2025-03-02T15:30:00Z"}},
		{name: "missing lessonNumber", row: map[string]any{"enrollmentId": float64(1), "scheduledAt": "2025-03-02T15:30:00Z"}},
		{name: "missing scheduledAt", row: map[string]any{"enrollmentId": float64(1), "lessonNumber": float64(1)}},
		{name: "zero enrollmentId", row: map[string]any{"enrollmentId": float64(0), "lessonNumber": float64(1), "scheduledAt": "2025-03-02T15:30:00Z"}},
		{name: "negative enrollmentId", row: map[string]any{"enrollmentId": float64(-5), "lessonNumber": float64(1), "scheduledAt": "2025-03-02T15:30:00Z"}},
		{name: "negative lessonNumber", row: map[string]any{"enrollmentId": float64(1), "lessonNumber": float64(-2), "scheduledAt": "2025-03-02T15:30:00Z"}},
		{name: "unparseable time", row: map[string]any{"enrollmentId": float64(1), "lessonNumber": float64(1), "scheduledAt": "next tuesday"}},
		{name: "fractional lesson number", row: map[string]any{"enrollmentId": float64(1), "lessonNumber": 1.5, "scheduledAt": "2025-03-02T15:30:00Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizeScheduleRow(tt.row)
			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrInvalidScheduleRow)
		})
	}
}
