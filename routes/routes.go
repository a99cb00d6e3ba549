package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"skybook/handlers"
)

// RegisterTemplateRoutes registers the template lookup endpoint.
func RegisterTemplateRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/templates")
	{
		api.GET("/:token", hb.GetTemplate)
	}
}

// RegisterWizardRoutes sets up the endpoints for the booking wizard.
func RegisterWizardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/wizard/:token/session", hb.StartSession)

	session := r.Group("/api/wizard/session/:sessionID")
	{
		session.GET("", hb.GetSession)
		session.DELETE("", hb.CancelSession)

		session.PUT("/itinerary", hb.UpdateItinerary)
		session.PUT("/passengers", hb.UpdatePassengers)
		session.PUT("/extras", hb.UpdateExtras)
		session.PUT("/payment", hb.UpdatePayment)
		session.PATCH("/payment/details", hb.UpdateCardDetails)

		session.POST("/billing/:index/phones", hb.AddBillingPhone)
		session.DELETE("/billing/:index/phones/:phoneIndex", hb.RemoveBillingPhone)

		session.POST("/advance", hb.Advance)
		session.POST("/back", hb.Retreat)
		session.POST("/goto/:stepId", hb.JumpTo)
		session.POST("/reset/:stepId", hb.ResetStep)

		session.POST("/submit", hb.Submit)
	}
}

// RegisterBookingRoutes registers the direct booking submission endpoint.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.CreateBooking)
	}
}

// RegisterPaymentRoutes registers the gateway callback and return pages.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payment/callback", hb.GatewayCallback)

	r.GET("/payment/success", hb.PaymentSuccess)
	r.GET("/payment/fail", hb.PaymentFail)
	r.GET("/payment/cancel", hb.PaymentCancel)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Skybook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterTemplateRoutes(r, hb)
	RegisterWizardRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterHealthRoute(r)
}
