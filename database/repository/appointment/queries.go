// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotify/models"
)

// overlapFilter matches booked appointments whose half-open [start, end)
// intersects [from, to): start < to && end > from.
func overlapFilter(calendarID string, from, to time.Time) bson.M {
	return bson.M{
		"calendarId": calendarID,
		"status":     models.AppointmentStatusBooked,
		"start":      bson.M{"$lt": to.UTC()},
		"end":        bson.M{"$gt": from.UTC()},
	}
}

func (r *mongoAppointmentRepo) ListNonCancelledInWindow(ctx context.Context, calendarID string, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, overlapFilter(calendarID, from, to), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *mongoAppointmentRepo) CountOverlapping(ctx context.Context, calendarID string, start, end time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.coll.CountDocuments(ctx, overlapFilter(calendarID, start, end))
}
