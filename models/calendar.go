package models

import "time"

// AvailabilityRule is one recurring weekly booking window. Times are local
// wall-clock values ("HH:MM:SS") interpreted in the owning calendar's timezone.
type AvailabilityRule struct {
	DayOfWeek int    `bson:"dayOfWeek" json:"dayOfWeek" binding:"min=0,max=6"` // 0=Sunday .. 6=Saturday
	StartTime string `bson:"startTime" json:"startTime" binding:"required"`    // e.g. "09:00:00"
	EndTime   string `bson:"endTime" json:"endTime" binding:"required"`        // e.g. "17:00:00"
}

// Calendar is a bookable calendar owned by a tenant. Availability rules are
// embedded so that saving a new rule set replaces the old one in a single
// atomic document update.
type Calendar struct {
	ID              string             `bson:"id" json:"id"`
	TenantID        string             `bson:"tenantId" json:"tenantId"`
	Name            string             `bson:"name" json:"name"`
	DurationMinutes int                `bson:"durationMinutes" json:"durationMinutes"` // slot length
	BufferMinutes   int                `bson:"bufferMinutes" json:"bufferMinutes"`     // gap enforced after each slot
	Timezone        string             `bson:"timezone" json:"timezone"`               // IANA zone name, "UTC" by default
	Active          bool               `bson:"active" json:"active"`
	Rules           []AvailabilityRule `bson:"rules" json:"rules"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CalendarConfig is the immutable snapshot the availability engine computes
// against.
type CalendarConfig struct {
	DurationMinutes int
	BufferMinutes   int
	Timezone        string
}

// Config extracts the computation snapshot from a calendar.
func (c Calendar) Config() CalendarConfig {
	return CalendarConfig{
		DurationMinutes: c.DurationMinutes,
		BufferMinutes:   c.BufferMinutes,
		Timezone:        c.Timezone,
	}
}

// CreateCalendarRequest defines the payload for creating a calendar.
type CreateCalendarRequest struct {
	Name            string `json:"name" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,min=1"`
	BufferMinutes   int    `json:"bufferMinutes" binding:"min=0"`
	Timezone        string `json:"timezone"`
}

// SetAvailabilityRequest defines the payload for replacing a calendar's
// availability rules as a set.
type SetAvailabilityRequest struct {
	Rules []AvailabilityRule `json:"rules" binding:"required,dive"`
}
