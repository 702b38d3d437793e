package transport

import (
	"net/http"

	"github.com/eboniejc/muse-app/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService service.EventService
}

func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) UpcomingEvents(c *gin.Context) {
	events, err := h.eventService.UpcomingEvents(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
