package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appointmentRepo "slotify/database/repository/appointment"
	calendarRepo "slotify/database/repository/calendar"
	"slotify/models"
	"slotify/services/availability"
	"slotify/utils"
)

// CalendarHandler serves tenant-side calendar and availability management.
type CalendarHandler struct {
	CalendarRepo    calendarRepo.CalendarRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
}

func NewCalendarHandler(calRepo calendarRepo.CalendarRepository, apptRepo appointmentRepo.AppointmentRepository) *CalendarHandler {
	return &CalendarHandler{CalendarRepo: calRepo, AppointmentRepo: apptRepo}
}

func (h *CalendarHandler) CreateCalendarHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req models.CreateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timezone", "message": err.Error()})
			return
		}
	}

	cal := &models.Calendar{
		TenantID:        tenantID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		BufferMinutes:   req.BufferMinutes,
		Timezone:        req.Timezone,
	}
	if err := h.CalendarRepo.Create(c.Request.Context(), cal); err != nil {
		utils.GetLogger().Error("Failed to create calendar", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create calendar"})
		return
	}

	c.JSON(http.StatusCreated, cal)
}

func (h *CalendarHandler) GetCalendarHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	cal, err := h.CalendarRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil || cal.TenantID != tenantID {
		if err != nil && !errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			utils.GetLogger().Error("Failed to fetch calendar", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch calendar"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Calendar not found"})
		return
	}

	c.JSON(http.StatusOK, cal)
}

// SetAvailabilityHandler replaces the calendar's availability rules as a full
// set.
func (h *CalendarHandler) SetAvailabilityHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var req models.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	if err := availability.ValidateRules(req.Rules); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid availability rules", "message": err.Error()})
		return
	}

	err := h.CalendarRepo.ReplaceAvailabilityRules(c.Request.Context(), tenantID, c.Param("id"), req.Rules)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Calendar not found"})
			return
		}
		utils.GetLogger().Error("Failed to replace availability rules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save availability rules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Availability rules saved", "rules": req.Rules})
}

func (h *CalendarHandler) GetAvailabilityHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	cal, err := h.CalendarRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil || cal.TenantID != tenantID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Calendar not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": cal.Rules})
}

func (h *CalendarHandler) ListAppointmentsHandler(c *gin.Context) {
	tenantID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	appts, err := h.AppointmentRepo.ListByCalendar(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		utils.GetLogger().Error("Failed to list appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
