package handler

import (
	"net/http"
	"time"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the settings the route table depends on
type RouterConfig struct {
	JWTSecret   string
	Production  bool
	CORSOrigins []string
	// RateLimiter guards auth and contact; nil disables limiting
	RateLimiter *middleware.RateLimiter
}

type Handlers struct {
	Auth     *AuthHandler
	Public   *PublicHandler
	Contact  *ContactHandler
	Admin    *AdminHandler
	LiveFeed *LiveFeedHandler
}

// NewRouter builds the full HTTP surface
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(
		middleware.RequestLogger(),
		gin.Recovery(),
		middleware.SecurityHeadersMiddleware(),
		middleware.HSTSMiddleware(cfg.Production),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.AuthMiddleware(cfg.JWTSecret)

	auth := router.Group("/api/auth", limit(cfg.RateLimiter, "auth"))
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", requireAuth, h.Auth.Me)
	}

	router.POST("/api/contact", limit(cfg.RateLimiter, "contact"), h.Contact.Submit)

	public := router.Group("/api/public")
	{
		public.GET("/projects", h.Public.Projects)
		public.GET("/projects/featured", h.Public.FeaturedProjects)
		public.GET("/skills", h.Public.Skills)
		public.GET("/about", h.Public.About)
		public.GET("/social", h.Public.Social)
		public.GET("/resume", h.Public.Resume)
		public.GET("/coffee", h.Public.Coffee)
		public.GET("/payment", h.Public.Payment)

		public.POST("/coffee-purchase", requireAuth, h.Public.CreatePurchase)
		public.GET("/my-coffee-purchases", requireAuth, h.Public.MyPurchases)
	}

	admin := router.Group("/api/admin", requireAuth, middleware.AdminMiddleware())
	{
		admin.GET("/projects", h.Admin.ListProjects)
		admin.POST("/projects", h.Admin.CreateProject)
		admin.PUT("/projects/:id", h.Admin.UpdateProject)
		admin.DELETE("/projects/:id", h.Admin.DeleteProject)

		admin.GET("/skills", h.Admin.ListSkills)
		admin.POST("/skills", h.Admin.CreateSkill)
		admin.PUT("/skills/:id", h.Admin.UpdateSkill)
		admin.DELETE("/skills/:id", h.Admin.DeleteSkill)

		admin.GET("/contacts", h.Admin.ListContacts)
		admin.DELETE("/contacts/:id", h.Admin.DeleteContact)

		admin.GET("/users", h.Admin.ListUsers)
		admin.DELETE("/users/:id", h.Admin.DeleteUser)

		admin.GET("/about", h.Admin.GetAbout)
		admin.POST("/about", h.Admin.UpdateAbout)
		admin.GET("/social", h.Admin.GetSocial)
		admin.POST("/social", h.Admin.UpdateSocial)
		admin.GET("/resume", h.Admin.GetResume)
		admin.POST("/resume", h.Admin.UpdateResume)
		admin.GET("/coffee", h.Admin.GetCoffee)
		admin.POST("/coffee", h.Admin.UpdateCoffee)
		admin.GET("/payment", h.Admin.GetPayment)
		admin.POST("/payment", h.Admin.UpdatePayment)

		admin.GET("/coffee-purchases", h.Admin.ListPurchases)
		admin.POST("/coffee-purchases/:id/approve", h.Admin.ApprovePurchase)
		admin.POST("/coffee-purchases/:id/reject", h.Admin.RejectPurchase)
		admin.GET("/coffee-purchases/:id/history", h.Admin.PurchaseHistory)

		if h.LiveFeed != nil {
			admin.GET("/ws", h.LiveFeed.HandleWebSocket)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return router
}

func limit(rl *middleware.RateLimiter, scope string) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.Middleware(scope)
}
