// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"time"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentRepository interface {
	EnsureIndexes() error
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// ListNonCancelledInWindow returns booked appointments whose [start, end)
	// intersects [from, to).
	ListNonCancelledInWindow(ctx context.Context, calendarID string, from, to time.Time) ([]models.Appointment, error)
	// CountOverlapping counts booked appointments overlapping [start, end).
	CountOverlapping(ctx context.Context, calendarID string, start, end time.Time) (int64, error)
	ListByCalendar(ctx context.Context, tenantID, calendarID string) ([]models.Appointment, error)
	SetStatus(ctx context.Context, tenantID, appointmentID, status string) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
}
