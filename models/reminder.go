package models

import "time"

// ReminderPayload is the task body queued when a booking is confirmed and
// consumed by the reminder worker shortly before the appointment starts.
type ReminderPayload struct {
	AppointmentID string    `json:"appointmentId"`
	CalendarName  string    `json:"calendarName"`
	ContactEmail  string    `json:"contactEmail"`
	Start         time.Time `json:"start"`
}
