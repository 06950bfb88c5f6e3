// File: database/repository/contact/interface.go
package contactRepo

import (
	"context"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ContactRepository interface {
	EnsureIndexes() error
	// FindOrCreate resolves a contact by (tenantId, email), creating it if
	// absent. The lookup-or-insert is a single atomic upsert.
	FindOrCreate(ctx context.Context, contact models.Contact) (*models.Contact, error)
	GetByID(ctx context.Context, contactID string) (*models.Contact, error)
}

type mongoContactRepo struct {
	coll *mongo.Collection
}

// NewMongoContactRepo constructs a new MongoDB ContactRepository.
func NewMongoContactRepo() ContactRepository {
	return &mongoContactRepo{
		coll: database.DB().Collection("contacts"),
	}
}
