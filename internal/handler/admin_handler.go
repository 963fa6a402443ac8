package handler

import (
	"net/http"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/middleware"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/service"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves /api/admin. Every route sits behind AuthMiddleware
// and AdminMiddleware.
type AdminHandler struct {
	authService    *service.AuthService
	contentService *service.ContentService
	contactService *service.ContactService
	coffeeService  *service.CoffeeService
}

func NewAdminHandler(
	authService *service.AuthService,
	contentService *service.ContentService,
	contactService *service.ContactService,
	coffeeService *service.CoffeeService,
) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		contentService: contentService,
		contactService: contactService,
		coffeeService:  coffeeService,
	}
}

type ApproveRequest struct {
	ProjectLink string `json:"projectLink"`
}

type RejectRequest struct {
	RejectionReason string `json:"rejectionReason"`
}

// Projects

func (h *AdminHandler) ListProjects(c *gin.Context) {
	projects, err := h.contentService.ListProjects(c.Request.Context())
	respond(c, http.StatusOK, projects, err)
}

func (h *AdminHandler) CreateProject(c *gin.Context) {
	var req service.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	project, err := h.contentService.CreateProject(c.Request.Context(), req)
	respond(c, http.StatusCreated, project, err)
}

func (h *AdminHandler) UpdateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	project, err := h.contentService.UpdateProject(c.Request.Context(), id, req)
	respond(c, http.StatusOK, project, err)
}

func (h *AdminHandler) DeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.contentService.DeleteProject(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// Skills

func (h *AdminHandler) ListSkills(c *gin.Context) {
	skills, err := h.contentService.ListSkills(c.Request.Context())
	respond(c, http.StatusOK, skills, err)
}

func (h *AdminHandler) CreateSkill(c *gin.Context) {
	var req service.SkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	skill, err := h.contentService.CreateSkill(c.Request.Context(), req)
	respond(c, http.StatusCreated, skill, err)
}

func (h *AdminHandler) UpdateSkill(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.SkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	skill, err := h.contentService.UpdateSkill(c.Request.Context(), id, req)
	respond(c, http.StatusOK, skill, err)
}

func (h *AdminHandler) DeleteSkill(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.contentService.DeleteSkill(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Skill deleted"})
}

// Contacts

func (h *AdminHandler) ListContacts(c *gin.Context) {
	contacts, err := h.contactService.List(c.Request.Context())
	respond(c, http.StatusOK, contacts, err)
}

func (h *AdminHandler) DeleteContact(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted"})
}

// Users

// ListUsers returns every account; password hashes never serialise
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	respond(c, http.StatusOK, users, err)
}

// DeleteUser hard-deletes an account other than the caller's
// DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	claims, _ := middleware.GetClaims(c)

	logger.Log.Info("Admin deleting user",
		zap.String("admin_id", claims.UserID.String()),
		zap.String("target_user_id", id.String()),
	)

	if err := h.authService.DeleteUser(c.Request.Context(), claims.UserID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// Singletons

func (h *AdminHandler) GetAbout(c *gin.Context) {
	about, err := h.contentService.GetAbout(c.Request.Context())
	respond(c, http.StatusOK, about, err)
}

func (h *AdminHandler) UpdateAbout(c *gin.Context) {
	var req service.AboutInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	about, err := h.contentService.UpdateAbout(c.Request.Context(), req)
	respond(c, http.StatusOK, about, err)
}

func (h *AdminHandler) GetSocial(c *gin.Context) {
	links, err := h.contentService.GetSocialLinks(c.Request.Context())
	respond(c, http.StatusOK, links, err)
}

func (h *AdminHandler) UpdateSocial(c *gin.Context) {
	var req service.SocialLinksInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	links, err := h.contentService.UpdateSocialLinks(c.Request.Context(), req)
	respond(c, http.StatusOK, links, err)
}

func (h *AdminHandler) GetResume(c *gin.Context) {
	resume, err := h.contentService.GetResume(c.Request.Context())
	respond(c, http.StatusOK, resume, err)
}

func (h *AdminHandler) UpdateResume(c *gin.Context) {
	var req service.ResumeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resume, err := h.contentService.UpdateResume(c.Request.Context(), req)
	respond(c, http.StatusOK, resume, err)
}

func (h *AdminHandler) GetCoffee(c *gin.Context) {
	pricing, err := h.coffeeService.GetPricing(c.Request.Context())
	respond(c, http.StatusOK, pricing, err)
}

func (h *AdminHandler) UpdateCoffee(c *gin.Context) {
	var req service.CoffeeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	pricing, err := h.coffeeService.UpdatePricing(c.Request.Context(), req)
	respond(c, http.StatusOK, pricing, err)
}

func (h *AdminHandler) GetPayment(c *gin.Context) {
	payment, err := h.contentService.GetPayment(c.Request.Context())
	respond(c, http.StatusOK, payment, err)
}

func (h *AdminHandler) UpdatePayment(c *gin.Context) {
	var req service.PaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	payment, err := h.contentService.UpdatePayment(c.Request.Context(), req)
	respond(c, http.StatusOK, payment, err)
}

// Coffee purchases

func (h *AdminHandler) ListPurchases(c *gin.Context) {
	purchases, err := h.coffeeService.ListPurchases(c.Request.Context())
	respond(c, http.StatusOK, purchases, err)
}

// ApprovePurchase moves a pending purchase to approved
// POST /api/admin/coffee-purchases/:id/approve
func (h *AdminHandler) ApprovePurchase(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ApproveRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}
	claims, _ := middleware.GetClaims(c)

	purchase, err := h.coffeeService.Approve(c.Request.Context(), claims.UserID, id, req.ProjectLink)
	respond(c, http.StatusOK, purchase, err)
}

// RejectPurchase moves a pending purchase to rejected
// POST /api/admin/coffee-purchases/:id/reject
func (h *AdminHandler) RejectPurchase(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req RejectRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}
	claims, _ := middleware.GetClaims(c)

	purchase, err := h.coffeeService.Reject(c.Request.Context(), claims.UserID, id, req.RejectionReason)
	respond(c, http.StatusOK, purchase, err)
}

func (h *AdminHandler) PurchaseHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entries, err := h.coffeeService.History(c.Request.Context(), id)
	respond(c, http.StatusOK, entries, err)
}
