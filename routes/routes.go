package routes

import (
	"net/http"
	"time"

	"medconnect/handlers"
	"medconnect/middleware"
	"medconnect/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDoctorRoutes registers doctor accounts, availability and drafts.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		// Public endpoints
		api.POST("/register", hb.RegisterDoctorHandler)
		api.POST("/login", hb.AuthenticateDoctorHandler)
		api.GET("", hb.ListDoctorsHandler)
		api.GET("/id/:id", hb.GetDoctorHandler)
		api.GET("/id/:id/availability", hb.GetAvailabilityHandler)

		// Writes require the owning doctor.
		protected := api.Group("")
		protected.Use(middleware.DoctorAuthMiddleware(hb.Resolver))
		protected.PUT("/id/:id/availability", hb.UpdateAvailabilityHandler)

		drafts := protected.Group("/availability/drafts")
		drafts.POST("", hb.StartDraftHandler)
		drafts.GET("/:draftID", hb.GetDraftHandler)
		drafts.DELETE("/:draftID", hb.DiscardDraftHandler)
		drafts.POST("/:draftID/slots", hb.AddDraftSlotHandler)
		drafts.PATCH("/:draftID/slots/:index", hb.UpdateDraftSlotHandler)
		drafts.DELETE("/:draftID/slots/:index", hb.RemoveDraftSlotHandler)
		drafts.GET("/:draftID/preview", hb.PreviewDraftHandler)
		drafts.POST("/:draftID/save", hb.SaveDraftHandler)
	}
}

// RegisterHealthRoute reports the last background health check.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		state := "ok"
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}
		c.JSON(code, gin.H{"status": state, "checks": status})
	})
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware(hb.AdminToken))
		adminGroup.GET("/doctors", hb.AdminHandler.GetAllDoctorsHandler)
		adminGroup.DELETE("/doctors/:id", hb.AdminHandler.DeleteDoctorHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and global
// middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, maxRequestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin))

	RegisterHealthRoute(r)
	RegisterDoctorRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
