package entity

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusPaused    EnrollmentStatus = "paused"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

type Enrollment struct {
	ID                 int64            `json:"id" db:"id"`
	UserID             int64            `json:"user_id" db:"user_id"`
	CourseID           int64            `json:"course_id" db:"course_id"`
	Status             EnrollmentStatus `json:"status" db:"status"`
	EnrolledAt         time.Time        `json:"enrolled_at" db:"enrolled_at"`
	CompletedAt        *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
	ProgressPercentage int              `json:"progress_percentage" db:"progress_percentage"`
	UpdatedAt          time.Time        `json:"updated_at" db:"updated_at"`
}

// EnrollmentDetails is the admin-console view: enrollment joined with the
// course, the student and the per-lesson completions.
type EnrollmentDetails struct {
	Enrollment
	CourseName   string             `json:"course_name"`
	TotalLessons int                `json:"total_lessons"`
	SkillLevel   string             `json:"skill_level"`
	StudentName  string             `json:"student_name"`
	StudentEmail string             `json:"student_email"`
	Completions  []LessonCompletion `json:"completions"`
}

// EnrollmentSummary is the student-dashboard view of one enrollment: the
// course joined in, with the completed-lesson count already resolved.
type EnrollmentSummary struct {
	ID                 int64            `json:"id"`
	Status             EnrollmentStatus `json:"status"`
	ProgressPercentage int              `json:"progress_percentage"`
	EnrolledAt         time.Time        `json:"enrolled_at"`
	CompletedAt        *time.Time       `json:"completed_at,omitempty"`
	CourseID           int64            `json:"course_id"`
	CourseName         string           `json:"course_name"`
	CourseDescription  string           `json:"course_description,omitempty"`
	TotalLessons       int              `json:"total_lessons"`
	CompletedLessons   int              `json:"completed_lessons"`
	InstructorName     string           `json:"instructor_name,omitempty"`
}

// EnrollmentProgress is the result of a progress recomputation after a
// lesson completion is added or removed.
type EnrollmentProgress struct {
	CompletedLessons   int `json:"completed_lessons"`
	TotalLessons       int `json:"total_lessons"`
	ProgressPercentage int `json:"progress_percentage"`
}
