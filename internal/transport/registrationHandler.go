package transport

import (
	"net/http"

	"github.com/eboniejc/muse-app/internal/entity"
	"github.com/eboniejc/muse-app/internal/service"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	registrationService service.RegistrationService
}

func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

func (h *RegistrationHandler) Notify(c *gin.Context) {
	var form entity.RegistrationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registrationService.SubmitForm(c.Request.Context(), &form); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
