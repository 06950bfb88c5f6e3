// File: services/booking/booking.go
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"slotify/config"
	"slotify/cron"
	appointmentRepo "slotify/database/repository/appointment"
	calendarRepo "slotify/database/repository/calendar"
	contactRepo "slotify/database/repository/contact"
	"slotify/models"
	"slotify/utils"
)

// How long a slot claim is held while the booking write completes.
const claimTTL = 30 * time.Second

// BookingService creates and cancels appointments.
type BookingService interface {
	CreateBooking(ctx context.Context, calendarID string, req models.BookingRequest) (*models.BookingResponse, error)
	CancelBooking(ctx context.Context, tenantID, appointmentID string) error
}

// DefaultBookingService is a concrete implementation.
type DefaultBookingService struct {
	CalendarRepo    calendarRepo.CalendarRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	ContactRepo     contactRepo.ContactRepository
	Locker          SlotLocker

	// Reminders enqueues appointment reminders; nil disables them.
	Reminders *asynq.Client

	// Now is the clock used to reject stale slots. Defaults to time.Now.
	Now func() time.Time
}

// CreateBooking books the slot echoed back from the availability endpoint.
// The slot is claimed (per calendar+start advisory lock) and the conflict
// check re-run inside the claim before the appointment is inserted, so a
// concurrent booking of the same instant surfaces as SlotUnavailableError
// rather than a double booking.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, calendarID string, req models.BookingRequest) (*models.BookingResponse, error) {
	switch {
	case req.TenantID == "":
		return nil, ValidationError{Field: "tenantId"}
	case req.Email == "":
		return nil, ValidationError{Field: "email"}
	case req.Start.IsZero():
		return nil, ValidationError{Field: "start"}
	}

	cal, err := s.CalendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	if cal.TenantID != req.TenantID {
		// Cross-tenant ids behave as if the calendar does not exist.
		return nil, calendarRepo.ErrCalendarNotFound
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	start := req.Start.UTC()
	end := start.Add(time.Duration(cal.DurationMinutes) * time.Minute)
	occupiedEnd := end.Add(time.Duration(cal.BufferMinutes) * time.Minute)

	if !start.After(now) {
		return nil, SlotUnavailableError{Start: start}
	}

	key := slotClaimKey(cal.ID, start)
	ok, err := s.Locker.Acquire(ctx, key, claimTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, SlotUnavailableError{Start: start}
	}
	defer s.Locker.Release(ctx, key)

	overlapping, err := s.AppointmentRepo.CountOverlapping(ctx, cal.ID, start, occupiedEnd)
	if err != nil {
		return nil, fmt.Errorf("conflict check failed: %w", err)
	}
	if overlapping > 0 {
		return nil, SlotUnavailableError{Start: start}
	}

	contact, err := s.ContactRepo.FindOrCreate(ctx, models.Contact{
		TenantID:  req.TenantID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contact: %w", err)
	}

	appt := &models.Appointment{
		ID:         uuid.New().String(),
		TenantID:   req.TenantID,
		CalendarID: cal.ID,
		ContactID:  contact.ID,
		Start:      start,
		End:        end,
		Status:     models.AppointmentStatusBooked,
		Notes:      req.Notes,
	}
	if err := s.AppointmentRepo.Create(ctx, appt); err != nil {
		// The unique booked-slot index backs the claim; a duplicate key here
		// means the race was lost anyway.
		if mongo.IsDuplicateKeyError(err) {
			return nil, SlotUnavailableError{Start: start}
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.enqueueReminder(ctx, cal, appt, contact)

	return &models.BookingResponse{
		Success:   true,
		BookingID: appt.ID,
		Start:     appt.Start,
		End:       appt.End,
	}, nil
}

// CancelBooking flips the appointment status; the row is kept.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, tenantID, appointmentID string) error {
	return s.AppointmentRepo.SetStatus(ctx, tenantID, appointmentID, models.AppointmentStatusCancelled)
}

// enqueueReminder schedules a reminder ahead of the appointment. Best effort:
// a queue failure never fails the booking.
func (s *DefaultBookingService) enqueueReminder(ctx context.Context, cal *models.Calendar, appt *models.Appointment, contact *models.Contact) {
	if s.Reminders == nil {
		return
	}

	task, err := cron.NewReminderTask(models.ReminderPayload{
		AppointmentID: appt.ID,
		CalendarName:  cal.Name,
		ContactEmail:  contact.Email,
		Start:         appt.Start,
	})
	if err != nil {
		utils.GetLogger().Warn("Failed to build reminder task", zap.Error(err))
		return
	}

	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	fireAt := appt.Start.Add(-lead)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	if _, err := s.Reminders.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt)); err != nil {
		utils.GetLogger().Warn("Failed to enqueue reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}
