package repository

import (
	"context"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"
)

type CourseRepository interface {
	GetAllActive(ctx context.Context) ([]*entity.CourseListing, error)
	GetByID(ctx context.Context, id int64) (*entity.Course, error)
}

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *entity.Enrollment) error
	GetByID(ctx context.Context, id int64) (*entity.Enrollment, error)
	GetActiveByUserAndCourse(ctx context.Context, userID, courseID int64) (*entity.Enrollment, error)
	CountActiveByCourse(ctx context.Context, courseID int64) (int, error)
	ListByUser(ctx context.Context, userID int64, statuses []entity.EnrollmentStatus) ([]*entity.Enrollment, error)
	ListDetails(ctx context.Context, filter *EnrollmentFilter) ([]*entity.EnrollmentDetails, error)
	ListSummariesByUser(ctx context.Context, userID int64) ([]*entity.EnrollmentSummary, error)
	UpdateProgress(ctx context.Context, id int64, progress int, status entity.EnrollmentStatus, completedAt *time.Time) error
}

// EnrollmentFilter narrows the admin enrollment listing.
type EnrollmentFilter struct {
	CourseID int64
	Status   entity.EnrollmentStatus
}

type LessonScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.LessonSchedule, error)
	GetByEnrollmentAndLesson(ctx context.Context, enrollmentID int64, lessonNumber int) (*entity.LessonSchedule, error)
	Create(ctx context.Context, schedule *entity.LessonSchedule) error
	Update(ctx context.Context, schedule *entity.LessonSchedule) error
	ListUpcomingByUser(ctx context.Context, userID int64, after time.Time) ([]*entity.UpcomingLesson, error)
}

type LessonCompletionRepository interface {
	Create(ctx context.Context, enrollmentID int64, lessonNumber int) error
	Delete(ctx context.Context, enrollmentID int64, lessonNumber int) error
	CountByEnrollment(ctx context.Context, enrollmentID int64) (int, error)
	ListByEnrollments(ctx context.Context, enrollmentIDs []int64) ([]*entity.LessonCompletion, error)
}

type RoomRepository interface {
	GetAllActive(ctx context.Context) ([]*entity.Room, error)
	GetByID(ctx context.Context, id int64) (*entity.Room, error)
}

type RoomBookingRepository interface {
	Create(ctx context.Context, booking *entity.RoomBooking) error
	GetByID(ctx context.Context, id int64) (*entity.RoomBooking, error)
	HasOverlap(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status entity.RoomBookingStatus) error
	ListByUser(ctx context.Context, userID int64) ([]*entity.RoomBookingDetails, error)
	CompletePast(ctx context.Context, before time.Time) (int64, error)
}

type EbookRepository interface {
	GetAllActive(ctx context.Context) ([]*entity.EbookAccess, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	ListByRole(ctx context.Context, role string) ([]*entity.User, error)
}

type EventRepository interface {
	ListUpcoming(ctx context.Context, after time.Time) ([]*entity.Event, error)
}

// SheetsRepository handles the generic side of the spreadsheet sync: plain
// row upserts and full-table reads for the whitelisted tables.
type SheetsRepository interface {
	UpsertRow(ctx context.Context, table string, row map[string]any) error
	SelectAll(ctx context.Context, table string) ([]map[string]any, error)
}
