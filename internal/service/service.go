package service

import (
	"context"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"
)

type CourseService interface {
	GetCatalog(ctx context.Context) ([]entity.CourseListing, error)
	GetCourse(ctx context.Context, id int64) (*entity.Course, error)
}

type EnrollmentService interface {
	Enroll(ctx context.Context, userID, courseID int64) (*entity.Enrollment, error)
	ListEnrollments(ctx context.Context, filter *EnrollmentListFilter) ([]*entity.EnrollmentDetails, error)
	ListUserEnrollments(ctx context.Context, userID int64) ([]*entity.EnrollmentSummary, error)
	CompleteLesson(ctx context.Context, req *LessonCompletionRequest) (*entity.EnrollmentProgress, error)
	UncompleteLesson(ctx context.Context, req *LessonCompletionRequest) (*entity.EnrollmentProgress, error)
}

type LessonService interface {
	UpcomingLessons(ctx context.Context, userID int64) ([]*entity.UpcomingLesson, error)
}

type BookingService interface {
	ListRooms(ctx context.Context) ([]*entity.Room, error)
	BookRoom(ctx context.Context, req *BookRoomRequest) (*entity.RoomBooking, error)
	CancelBooking(ctx context.Context, userID, bookingID int64) error
	GetUserBookings(ctx context.Context, userID int64) ([]*entity.RoomBookingDetails, error)
	CompletePastBookings(ctx context.Context) error
}

type EbookService interface {
	ListForUser(ctx context.Context, userID int64) ([]*entity.EbookAccess, error)
}

type InstructorService interface {
	ListInstructors(ctx context.Context) ([]*entity.Instructor, error)
}

type EventService interface {
	UpcomingEvents(ctx context.Context) ([]*entity.Event, error)
}

type SheetsService interface {
	ImportBatch(ctx context.Context, req *entity.ImportRequest) (*entity.ImportResult, error)
	ExportAll(ctx context.Context) (map[string][]map[string]any, error)
}

type RegistrationService interface {
	SubmitForm(ctx context.Context, form *entity.RegistrationForm) error
	HandleRegistrationTask(ctx context.Context, payload []byte) error
}

// PushGateway schedules and cancels delayed push notifications. Schedule
// returns an opaque handle that Cancel accepts later.
type PushGateway interface {
	Schedule(ctx context.Context, n *PushNotification) (string, error)
	Cancel(ctx context.Context, id string) (bool, error)
}

// PushNotification is a localized message delivered at SendAfter.
type PushNotification struct {
	Headings       map[string]string
	Contents       map[string]string
	ExternalUserID string
	SendAfter      time.Time
}

// Mailer sends a single transactional email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlContent, textContent string) error
}

// CatalogCache holds hot read-mostly listings. A nil implementation is
// allowed; callers treat cache errors as misses.
type CatalogCache interface {
	GetCourses(ctx context.Context) ([]entity.CourseListing, error)
	SetCourses(ctx context.Context, courses []entity.CourseListing) error
	GetEbooks(ctx context.Context) ([]entity.EbookAccess, error)
	SetEbooks(ctx context.Context, ebooks []entity.EbookAccess) error
	InvalidateCatalogs(ctx context.Context) error
}

// EnrollmentListFilter narrows the admin enrollment listing.
type EnrollmentListFilter struct {
	CourseID int64
	Status   entity.EnrollmentStatus
}

type LessonCompletionRequest struct {
	EnrollmentID int64 `json:"enrollment_id" binding:"required"`
	LessonNumber int   `json:"lesson_number" binding:"required,min=1"`
}

type BookRoomRequest struct {
	UserID    int64     `json:"user_id" binding:"required"`
	RoomID    int64     `json:"-"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Notes     string    `json:"notes"`
}
