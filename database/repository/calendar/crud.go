// File: database/repository/calendar/crud.go
package calendarRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotify/models"
)

func (r *mongoCalendarRepo) Create(ctx context.Context, cal *models.Calendar) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if cal.ID == "" {
		cal.ID = uuid.New().String()
	}
	if cal.Timezone == "" {
		cal.Timezone = "UTC"
	}
	if cal.Rules == nil {
		cal.Rules = []models.AvailabilityRule{}
	}
	cal.Active = true
	cal.CreatedAt = now
	cal.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, cal)
	return err
}

func (r *mongoCalendarRepo) GetByID(ctx context.Context, calendarID string) (*models.Calendar, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": calendarID, "active": true}
	var cal models.Calendar
	if err := r.coll.FindOne(ctx, filter).Decode(&cal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCalendarNotFound
		}
		return nil, err
	}
	return &cal, nil
}

func (r *mongoCalendarRepo) ListByTenant(ctx context.Context, tenantID string) ([]models.Calendar, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"tenantId": tenantID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cals []models.Calendar
	if err := cursor.All(ctx, &cals); err != nil {
		return nil, err
	}
	return cals, nil
}

// ReplaceAvailabilityRules swaps the calendar's whole rule set in one document
// update, so readers never observe a partially edited set.
func (r *mongoCalendarRepo) ReplaceAvailabilityRules(ctx context.Context, tenantID, calendarID string, rules []models.AvailabilityRule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rules == nil {
		rules = []models.AvailabilityRule{}
	}
	filter := bson.M{"id": calendarID, "tenantId": tenantID, "active": true}
	update := bson.M{"$set": bson.M{"rules": rules, "updatedAt": time.Now().UTC()}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCalendarNotFound
	}
	return nil
}

func (r *mongoCalendarRepo) GetAvailabilityRules(ctx context.Context, calendarID string) ([]models.AvailabilityRule, error) {
	cal, err := r.GetByID(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	return cal.Rules, nil
}
