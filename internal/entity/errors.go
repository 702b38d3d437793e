package entity

import "errors"

var (
	// Course errors
	ErrCourseNotFound  = errors.New("course not found")
	ErrCourseInactive  = errors.New("course is not active")
	ErrCourseFull      = errors.New("course is full")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")

	// Enrollment errors
	ErrEnrollmentNotFound = errors.New("enrollment not found")

	// Lesson schedule errors
	ErrScheduleNotFound    = errors.New("lesson schedule not found")
	ErrDuplicateSchedule   = errors.New("lesson schedule already exists for this enrollment and lesson")
	ErrInvalidScheduleRow  = errors.New("invalid lesson schedule row")
	ErrCompletionNotFound  = errors.New("lesson completion not found")
	ErrInvalidLessonNumber = errors.New("invalid lesson number")

	// Room errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingOverlap  = errors.New("room is already booked for this time slot")
	ErrBookingTimeSpan = errors.New("end time must be after start time")

	// Ebook errors
	ErrEbookNotFound = errors.New("ebook not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Sheets errors
	ErrUnknownTable = errors.New("unknown table")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden operation")
)
