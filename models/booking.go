package models

import "time"

// BookingRequest is the payload submitted from the public booking page. Start
// echoes a slot previously returned by the availability endpoint.
type BookingRequest struct {
	TenantID  string    `json:"tenantId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	Start     time.Time `json:"start"`
	Timezone  string    `json:"timezone"`
}

// BookingResponse is returned on a successful booking.
type BookingResponse struct {
	Success   bool      `json:"success"`
	BookingID string    `json:"bookingId"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// SlotsResponse lists bookable start instants for a calendar date, as
// ISO-8601 UTC strings sorted ascending.
type SlotsResponse struct {
	CalendarID string   `json:"calendarId"`
	Date       string   `json:"date"`
	Timezone   string   `json:"timezone"`
	Slots      []string `json:"slots"`
}
