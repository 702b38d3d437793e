package transport

import (
	"net/http"

	"github.com/eboniejc/muse-app/internal/entity"
	"github.com/eboniejc/muse-app/internal/service"

	"github.com/gin-gonic/gin"
)

type SheetsHandler struct {
	sheetsService service.SheetsService
}

func NewSheetsHandler(sheetsService service.SheetsService) *SheetsHandler {
	return &SheetsHandler{sheetsService: sheetsService}
}

func (h *SheetsHandler) Import(c *gin.Context) {
	var req entity.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ImportResult{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	result, err := h.sheetsService.ImportBatch(c.Request.Context(), &req)
	if err != nil {
		c.JSON(statusFromError(err), entity.ImportResult{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SheetsHandler) Export(c *gin.Context) {
	data, err := h.sheetsService.ExportAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}
