// File: database/repository/calendar/interface.go
package calendarRepo

import (
	"context"
	"errors"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrCalendarNotFound is returned when a calendar id does not resolve to an
// active calendar.
var ErrCalendarNotFound = errors.New("calendar not found")

type CalendarRepository interface {
	EnsureIndexes() error
	Create(ctx context.Context, cal *models.Calendar) error
	GetByID(ctx context.Context, calendarID string) (*models.Calendar, error)
	ListByTenant(ctx context.Context, tenantID string) ([]models.Calendar, error)
	ReplaceAvailabilityRules(ctx context.Context, tenantID, calendarID string, rules []models.AvailabilityRule) error
	GetAvailabilityRules(ctx context.Context, calendarID string) ([]models.AvailabilityRule, error)
}

type mongoCalendarRepo struct {
	coll *mongo.Collection
}

// NewMongoCalendarRepo constructs a new MongoDB CalendarRepository.
func NewMongoCalendarRepo() CalendarRepository {
	return &mongoCalendarRepo{
		coll: database.DB().Collection("calendars"),
	}
}
