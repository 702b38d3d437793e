package transport

import (
	"net/http"
	"strconv"

	"github.com/eboniejc/muse-app/internal/entity"
	"github.com/eboniejc/muse-app/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	enrollmentService service.EnrollmentService
}

func NewAdminHandler(enrollmentService service.EnrollmentService) *AdminHandler {
	return &AdminHandler{enrollmentService: enrollmentService}
}

func (h *AdminHandler) ListEnrollments(c *gin.Context) {
	filter := &service.EnrollmentListFilter{}

	if raw := c.Query("course_id"); raw != "" {
		courseID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
			return
		}
		filter.CourseID = courseID
	}
	if raw := c.Query("status"); raw != "" {
		filter.Status = entity.EnrollmentStatus(raw)
	}

	enrollments, err := h.enrollmentService.ListEnrollments(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments})
}

func (h *AdminHandler) CompleteLesson(c *gin.Context) {
	var req service.LessonCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	progress, err := h.enrollmentService.CompleteLesson(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

func (h *AdminHandler) UncompleteLesson(c *gin.Context) {
	var req service.LessonCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	progress, err := h.enrollmentService.UncompleteLesson(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
