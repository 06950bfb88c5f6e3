// File: database/repository/contact/crud.go
package contactRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotify/models"
)

// ErrContactNotFound is returned when a contact id does not resolve.
var ErrContactNotFound = errors.New("contact not found")

func (r *mongoContactRepo) FindOrCreate(ctx context.Context, contact models.Contact) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(contact.Email))
	filter := bson.M{"tenantId": contact.TenantID, "email": email}

	// Details are refreshed on repeat bookings; id and createdAt only on insert.
	update := bson.M{
		"$set": bson.M{
			"firstName": contact.FirstName,
			"lastName":  contact.LastName,
			"phone":     contact.Phone,
		},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"tenantId":  contact.TenantID,
			"email":     email,
			"createdAt": time.Now().UTC(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out models.Contact
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to upsert contact: %w", err)
	}
	return &out, nil
}

func (r *mongoContactRepo) GetByID(ctx context.Context, contactID string) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var contact models.Contact
	if err := r.coll.FindOne(ctx, bson.M{"id": contactID}).Decode(&contact); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}
