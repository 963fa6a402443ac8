package handler

import (
	"net/http"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/middleware"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/service"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PublicHandler serves the read-only site content and the buyer side of
// the coffee purchase workflow.
type PublicHandler struct {
	content *service.ContentService
	coffee  *service.CoffeeService
}

func NewPublicHandler(content *service.ContentService, coffee *service.CoffeeService) *PublicHandler {
	return &PublicHandler{
		content: content,
		coffee:  coffee,
	}
}

func (h *PublicHandler) Projects(c *gin.Context) {
	projects, err := h.content.ListProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *PublicHandler) FeaturedProjects(c *gin.Context) {
	projects, err := h.content.ListFeaturedProjects(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *PublicHandler) Skills(c *gin.Context) {
	skills, err := h.content.ListSkills(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, skills)
}

func (h *PublicHandler) About(c *gin.Context) {
	about, err := h.content.GetAbout(c.Request.Context())
	respond(c, http.StatusOK, about, err)
}

func (h *PublicHandler) Social(c *gin.Context) {
	links, err := h.content.GetSocialLinks(c.Request.Context())
	respond(c, http.StatusOK, links, err)
}

func (h *PublicHandler) Resume(c *gin.Context) {
	resume, err := h.content.GetResume(c.Request.Context())
	respond(c, http.StatusOK, resume, err)
}

func (h *PublicHandler) Coffee(c *gin.Context) {
	pricing, err := h.coffee.GetPricing(c.Request.Context())
	respond(c, http.StatusOK, pricing, err)
}

func (h *PublicHandler) Payment(c *gin.Context) {
	payment, err := h.content.GetPayment(c.Request.Context())
	respond(c, http.StatusOK, payment, err)
}

// CreatePurchase records a pending coffee purchase for the caller
// POST /api/public/coffee-purchase
func (h *PublicHandler) CreatePurchase(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	var req service.PurchaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Coffee purchase request parsing failed",
			zap.String("user_id", claims.UserID.String()),
			zap.Error(err),
		)
		respondBindError(c, err)
		return
	}

	purchase, err := h.coffee.CreatePurchase(c.Request.Context(), claims.UserID, req)
	respond(c, http.StatusCreated, purchase, err)
}

// MyPurchases lists the caller's purchases, newest first
// GET /api/public/my-coffee-purchases
func (h *PublicHandler) MyPurchases(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
		return
	}

	purchases, err := h.coffee.ListUserPurchases(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}
