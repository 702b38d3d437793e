package entity

import (
	"time"
)

type Course struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	TotalLessons int       `json:"total_lessons" db:"total_lessons"`
	MaxStudents  int       `json:"max_students" db:"max_students"`
	SkillLevel   string    `json:"skill_level" db:"skill_level"`
	Price        string    `json:"price,omitempty" db:"price"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	InstructorID int64     `json:"instructor_id,omitempty" db:"instructor_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CourseListing is a catalog entry: course plus instructor info and the
// number of active enrollments.
type CourseListing struct {
	Course
	InstructorName   string `json:"instructor_name,omitempty"`
	InstructorAvatar string `json:"instructor_avatar,omitempty"`
	EnrolledCount    int    `json:"enrolled_count"`
}
