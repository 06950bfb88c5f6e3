package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotify/config"
	calendarRepo "slotify/database/repository/calendar"
	"slotify/models"
	"slotify/services/availability"
	"slotify/utils"
)

// AvailabilityHandler serves the public slot listing endpoint.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetAvailableSlotsHandler returns the bookable start instants for a calendar
// date, as sorted ISO-8601 UTC strings.
func (h *AvailabilityHandler) GetAvailableSlotsHandler(c *gin.Context) {
	calendarID := c.Param("id")
	date := c.Query("date")
	timezone := c.DefaultQuery("timezone", config.AppConfig.DefaultTimezone)

	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: date"})
		return
	}
	if _, err := time.Parse(availability.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timezone", "message": err.Error()})
		return
	}

	slots, err := h.Service.GetAvailableSlots(c.Request.Context(), calendarID, date, timezone)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Calendar not found"})
			return
		}
		utils.GetLogger().Error("Failed to compute available slots",
			zap.String("calendarId", calendarID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute available slots"})
		return
	}

	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.UTC().Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, models.SlotsResponse{
		CalendarID: calendarID,
		Date:       date,
		Timezone:   timezone,
		Slots:      out,
	})
}
