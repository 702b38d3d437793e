package transport

import (
	"net/http"

	"github.com/eboniejc/muse-app/internal/service"

	"github.com/gin-gonic/gin"
)

type InstructorHandler struct {
	instructorService service.InstructorService
}

func NewInstructorHandler(instructorService service.InstructorService) *InstructorHandler {
	return &InstructorHandler{instructorService: instructorService}
}

func (h *InstructorHandler) ListInstructors(c *gin.Context) {
	instructors, err := h.instructorService.ListInstructors(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"instructors": instructors})
}
