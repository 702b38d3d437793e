package entity

import (
	"time"
)

// Synced spreadsheet table names as they appear in the sheet payload.
const (
	TableCourses           = "courses"
	TableEbooks            = "ebooks"
	TableRooms             = "rooms"
	TableRoomBookings      = "roomBookings"
	TableCourseEnrollments = "courseEnrollments"
	TableLessonCompletions = "lessonCompletions"
	TableLessonSchedules   = "lessonSchedules"
	TableUsers             = "users"
	TableUserProfiles      = "userProfiles"
)

// ImportRequest is one spreadsheet sync push: a table discriminator and the
// loose rows for that table. Row keys may arrive camelCase or snake_case.
type ImportRequest struct {
	Table string           `json:"table" binding:"required"`
	Rows  []map[string]any `json:"rows"`
}

type SkippedRow struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Message string       `json:"message,omitempty"`
	Skipped []SkippedRow `json:"skipped,omitempty"`
}

// ScheduleRow is a normalized lesson-schedule import row. ID is zero when
// the row does not target an existing record directly; the notification
// handles are informational only, the system-managed values win.
type ScheduleRow struct {
	ID                int64
	EnrollmentID      int64
	LessonNumber      int
	ScheduledAt       time.Time
	Notification24hID string
	Notification1hID  string
}
