package routes

import (
	"net/http"
	"time"

	"slotify/handlers"
	"slotify/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes registers the booking-page endpoints. No auth: these
// are reached from a tenant's public scheduling link.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/public/calendars")
	{
		api.GET("/:id/slots", hb.Availability.GetAvailableSlotsHandler)
		api.POST("/:id/bookings", hb.Booking.CreateBookingHandler)
	}
}

// RegisterCalendarRoutes registers tenant-facing calendar management endpoints.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calendars")
	api.Use(middleware.JWTAuthTenantMiddleware())
	{
		api.POST("", hb.Calendar.CreateCalendarHandler)
		api.GET("/:id", hb.Calendar.GetCalendarHandler)
		api.PUT("/:id/availability", hb.Calendar.SetAvailabilityHandler)
		api.GET("/:id/availability", hb.Calendar.GetAvailabilityHandler)
		api.GET("/:id/appointments", hb.Calendar.ListAppointmentsHandler)
		api.DELETE("/:id/appointments/:appointmentId", hb.Booking.CancelBookingHandler)
	}
}

func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes wires up CORS and all route groups.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPublicRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
	RegisterHealthRoute(r)
}
