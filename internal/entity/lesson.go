package entity

import (
	"time"
)

// LessonSchedule is one lesson's calendar slot for one course enrollment.
// At most one row exists per (enrollment, lesson number) pair; the database
// enforces the uniqueness.
//
// Notification24hID and Notification1hID are opaque push-gateway handles for
// the pending reminders 24h and 1h ahead of ScheduledAt. An empty string
// means no reminder is outstanding. A handle must never refer to a
// notification scheduled for a stale ScheduledAt.
type LessonSchedule struct {
	ID                int64     `json:"id" db:"id"`
	EnrollmentID      int64     `json:"enrollment_id" db:"enrollment_id"`
	LessonNumber      int       `json:"lesson_number" db:"lesson_number"`
	ScheduledAt       time.Time `json:"scheduled_at" db:"scheduled_at"`
	Notification24hID string    `json:"notification_24h_id,omitempty" db:"notification_24h_id"`
	Notification1hID  string    `json:"notification_1h_id,omitempty" db:"notification_1h_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

type LessonCompletion struct {
	ID           int64     `json:"id" db:"id"`
	EnrollmentID int64     `json:"enrollment_id" db:"enrollment_id"`
	LessonNumber int       `json:"lesson_number" db:"lesson_number"`
	CompletedAt  time.Time `json:"completed_at" db:"completed_at"`
}

// UpcomingLesson is a student's dashboard view of a future scheduled lesson.
type UpcomingLesson struct {
	ID           int64     `json:"id"`
	EnrollmentID int64     `json:"enrollment_id"`
	CourseID     int64     `json:"course_id"`
	CourseName   string    `json:"course_name"`
	LessonNumber int       `json:"lesson_number"`
	ScheduledAt  time.Time `json:"scheduled_at"`
}
