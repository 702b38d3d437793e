package repository

import (
	"testing"

	"github.com/eboniejc/muse-app/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnForResolvesBothSpellings(t *testing.T) {
	spec, ok := syncedTables[entity.TableLessonSchedules]
	require.True(t, ok)

	tests := []struct {
		key  string
		want string
	}{
		{"enrollmentId", "enrollment_id"},
		{"enrollment_id", "enrollment_id"},
		{"lessonNumber", "lesson_number"},
		{"scheduledAt", "scheduled_at"},
		{"scheduled_at", "scheduled_at"},
		{"notification24hId", "notification_24h_id"},
		{"notification_1h_id", "notification_1h_id"},
		{"ENROLLMENTID", "enrollment_id"},
		{"totallyUnknown", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, spec.columnFor(tt.key), "key %q", tt.key)
	}
}

func TestSyncedTablesCoverSheetWhitelist(t *testing.T) {
	want := []string{
		entity.TableCourses,
		entity.TableEbooks,
		entity.TableRooms,
		entity.TableRoomBookings,
		entity.TableCourseEnrollments,
		entity.TableLessonCompletions,
		entity.TableLessonSchedules,
		entity.TableUsers,
		entity.TableUserProfiles,
	}

	require.Len(t, syncedTables, len(want))
	for _, table := range want {
		spec, ok := syncedTables[table]
		require.True(t, ok, "missing table %s", table)
		assert.NotEmpty(t, spec.sqlName)
		assert.Equal(t, "id", spec.columns[0].column)
	}
}

func TestIsZeroID(t *testing.T) {
	assert.True(t, isZeroID(nil))
	assert.True(t, isZeroID(float64(0)))
	assert.True(t, isZeroID(""))
	assert.True(t, isZeroID("0"))
	assert.False(t, isZeroID(float64(3)))
	assert.False(t, isZeroID("12"))
}
