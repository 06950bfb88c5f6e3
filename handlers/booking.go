package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appointmentRepo "slotify/database/repository/appointment"
	calendarRepo "slotify/database/repository/calendar"
	"slotify/models"
	"slotify/services/booking"
	"slotify/utils"
)

// BookingHandler serves the public booking endpoint and tenant-side
// cancellation.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler books a slot previously returned by the availability
// endpoint.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	calendarID := c.Param("id")

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	resp, err := h.Service.CreateBooking(c.Request.Context(), calendarID, req)
	if err != nil {
		var verr booking.ValidationError
		var serr booking.SlotUnavailableError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": verr.Error()})
		case errors.As(err, &serr):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Selected time is no longer available, please pick another slot"})
		case errors.Is(err, calendarRepo.ErrCalendarNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Calendar not found"})
		default:
			utils.GetLogger().Error("Failed to create booking",
				zap.String("calendarId", calendarID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// CancelBookingHandler flips an appointment to cancelled. Tenant-scoped via
// the auth middleware.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	appointmentID := c.Param("appointmentId")

	if err := h.Service.CancelBooking(c.Request.Context(), tenantID, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
			return
		}
		utils.GetLogger().Error("Failed to cancel appointment",
			zap.String("appointmentId", appointmentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// tenantFromContext retrieves the tenant ID set by the auth middleware,
// aborting with 401 when absent.
func tenantFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get("tenantID")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Tenant not authenticated"})
		return "", false
	}
	tenantID, ok := v.(string)
	if !ok || tenantID == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Invalid tenant ID in context"})
		return "", false
	}
	return tenantID, true
}
