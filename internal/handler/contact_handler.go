package handler

import (
	"net/http"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/service"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// Submit stores a visitor inquiry
// POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req service.ContactInput
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Contact form validation failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		respondBindError(c, err)
		return
	}

	if _, err := h.contactService.Submit(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully!"})
}
