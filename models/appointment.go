package models

import "time"

// Appointment statuses. Cancellation is a status flip; rows are never deleted.
const (
	AppointmentStatusBooked    = "booked"
	AppointmentStatusCancelled = "cancelled"
)

// Appointment represents a confirmed booking on a calendar. Start and End are
// absolute UTC instants.
type Appointment struct {
	ID         string    `bson:"id" json:"id"`
	TenantID   string    `bson:"tenantId" json:"tenantId"`
	CalendarID string    `bson:"calendarId" json:"calendarId"`
	ContactID  string    `bson:"contactId" json:"contactId"`
	Start      time.Time `bson:"start" json:"start"`
	End        time.Time `bson:"end" json:"end"`
	Status     string    `bson:"status" json:"status"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Interval is a half-open [Start, End) time range used for conflict checks.
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}
