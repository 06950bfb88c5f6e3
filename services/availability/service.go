// File: services/availability/service.go
package availability

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "slotify/database/repository/appointment"
	calendarRepo "slotify/database/repository/calendar"
	"slotify/models"
)

// Appointments are fetched over a window wide enough to cover any slot the
// adjacent-day scan can produce, whatever the zone offsets involved.
const (
	windowBefore = 24 * time.Hour
	windowAfter  = 72 * time.Hour
)

// AvailabilityService computes the bookable slots for a calendar date.
type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, calendarID, date, viewerTimezone string) ([]time.Time, error)
}

// DefaultAvailabilityService is a concrete implementation backed by the
// calendar and appointment repositories. Slots are recomputed on every call;
// nothing is cached, so results always reflect the bookings present at call
// time.
type DefaultAvailabilityService struct {
	CalendarRepo    calendarRepo.CalendarRepository
	AppointmentRepo appointmentRepo.AppointmentRepository

	// Now is the clock used for the future-only filter. Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultAvailabilityService) GetAvailableSlots(ctx context.Context, calendarID, date, viewerTimezone string) ([]time.Time, error) {
	viewerLoc := time.UTC
	if viewerTimezone != "" {
		var err error
		viewerLoc, err = time.LoadLocation(viewerTimezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", viewerTimezone, err)
		}
	}

	dayStart, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	// The calendar document (config plus embedded rules) and the appointment
	// window are independent reads; issue them concurrently.
	type apptResult struct {
		appts []models.Appointment
		err   error
	}
	apptCh := make(chan apptResult, 1)
	go func() {
		appts, err := s.AppointmentRepo.ListNonCancelledInWindow(
			ctx, calendarID, dayStart.Add(-windowBefore), dayStart.Add(windowAfter))
		apptCh <- apptResult{appts, err}
	}()

	cal, calErr := s.CalendarRepo.GetByID(ctx, calendarID)
	res := <-apptCh

	if calErr != nil {
		return nil, calErr
	}
	if res.err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", res.err)
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	return ComputeSlots(cal.Config(), cal.Rules, res.appts, date, viewerLoc, now)
}
