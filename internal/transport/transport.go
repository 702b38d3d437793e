package transport

import (
	"errors"
	"net/http"
	"time"

	"github.com/eboniejc/muse-app/internal/entity"
	"github.com/eboniejc/muse-app/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

// Keys holds the shared secrets guarding the non-public route groups.
type Keys struct {
	SheetsAPIKey string
	AdminAPIKey  string
}

func InitRoutes(
	courseHandler *CourseHandler,
	bookingHandler *BookingHandler,
	ebookHandler *EbookHandler,
	lessonHandler *LessonHandler,
	instructorHandler *InstructorHandler,
	eventHandler *EventHandler,
	adminHandler *AdminHandler,
	sheetsHandler *SheetsHandler,
	registrationHandler *RegistrationHandler,
	keys Keys,
	timeout time.Duration,
) *gin.Engine {

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(timeout))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		courses := api.Group("/courses")
		{
			courses.GET("", courseHandler.GetCatalog)
			courses.GET("/enrollments", courseHandler.MyEnrollments)
			courses.GET("/:id", courseHandler.GetCourse)
			courses.POST("/:id/enroll", courseHandler.Enroll)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", bookingHandler.ListRooms)
			rooms.GET("/bookings", bookingHandler.GetUserBookings)
			rooms.POST("/:id/bookings", bookingHandler.BookRoom)
			rooms.POST("/bookings/:id/cancel", bookingHandler.CancelBooking)
		}

		api.GET("/ebooks", ebookHandler.ListEbooks)
		api.GET("/instructors", instructorHandler.ListInstructors)
		api.GET("/events/upcoming", eventHandler.UpcomingEvents)
		api.GET("/lessons/upcoming", lessonHandler.UpcomingLessons)
		api.POST("/registration/notify", registrationHandler.Notify)

		admin := api.Group("/admin", middleware.APIKey(keys.AdminAPIKey))
		{
			admin.GET("/enrollments", adminHandler.ListEnrollments)
			admin.POST("/lessons/complete", adminHandler.CompleteLesson)
			admin.POST("/lessons/uncomplete", adminHandler.UncompleteLesson)
		}

		sheets := api.Group("/sheets", middleware.APIKey(keys.SheetsAPIKey))
		{
			sheets.POST("/import", sheetsHandler.Import)
			sheets.POST("/export", sheetsHandler.Export)
		}
	}

	return router
}

// statusFromError maps service sentinels onto HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, entity.ErrCourseNotFound),
		errors.Is(err, entity.ErrEnrollmentNotFound),
		errors.Is(err, entity.ErrScheduleNotFound),
		errors.Is(err, entity.ErrRoomNotFound),
		errors.Is(err, entity.ErrBookingNotFound),
		errors.Is(err, entity.ErrEbookNotFound),
		errors.Is(err, entity.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrAlreadyEnrolled),
		errors.Is(err, entity.ErrBookingOverlap),
		errors.Is(err, entity.ErrDuplicateSchedule):
		return http.StatusConflict
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entity.ErrCourseInactive),
		errors.Is(err, entity.ErrCourseFull),
		errors.Is(err, entity.ErrBookingTimeSpan),
		errors.Is(err, entity.ErrInvalidLessonNumber),
		errors.Is(err, entity.ErrInvalidScheduleRow),
		errors.Is(err, entity.ErrUnknownTable),
		errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}
