package transport

import (
	"net/http"
	"strconv"

	"github.com/eboniejc/muse-app/internal/service"

	"github.com/gin-gonic/gin"
)

type EbookHandler struct {
	ebookService service.EbookService
}

func NewEbookHandler(ebookService service.EbookService) *EbookHandler {
	return &EbookHandler{ebookService: ebookService}
}

func (h *EbookHandler) ListEbooks(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	ebooks, err := h.ebookService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ebooks": ebooks})
}
