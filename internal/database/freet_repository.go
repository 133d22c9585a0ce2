// internal/database/freet_repository.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fritter/internal/models"
	"fritter/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FreetDocument represents the MongoDB schema for a freet.
type FreetDocument struct {
	ID           string    `bson:"_id"`
	AuthorID     string    `bson:"authorId"`
	Content      string    `bson:"content"`
	DateCreated  time.Time `bson:"dateCreated"`
	DateModified time.Time `bson:"dateModified"`
}

func freetToDocument(freet *models.Freet) *FreetDocument {
	return &FreetDocument{
		ID:           freet.ID.String(),
		AuthorID:     freet.AuthorID.String(),
		Content:      freet.Content,
		DateCreated:  freet.DateCreated,
		DateModified: freet.DateModified,
	}
}

func documentToFreet(doc *FreetDocument) (*models.Freet, error) {
	id, err := parseID("freet", doc.ID)
	if err != nil {
		return nil, err
	}
	authorID, err := parseID("author", doc.AuthorID)
	if err != nil {
		return nil, err
	}
	return &models.Freet{
		ID:           id,
		AuthorID:     authorID,
		Content:      doc.Content,
		DateCreated:  doc.DateCreated,
		DateModified: doc.DateModified,
	}, nil
}

func freetNotFound(id uuid.UUID) *utils.AppError {
	return utils.NewNotFoundError("freetNotFound", fmt.Sprintf("Freet with freet ID %s does not exist.", id))
}

func (m *MongoDB) CreateFreet(ctx context.Context, freet *models.Freet) error {
	return insertOne(ctx, m.Freets, freetToDocument(freet), "Freet already exists")
}

func (m *MongoDB) GetFreet(ctx context.Context, id uuid.UUID) (*models.Freet, error) {
	doc, err := findOne[FreetDocument](ctx, m.Freets, bson.M{"_id": id.String()}, freetNotFound(id))
	if err != nil {
		return nil, err
	}
	return documentToFreet(doc)
}

// GetAllFreets returns every freet, most recently modified first.
func (m *MongoDB) GetAllFreets(ctx context.Context) ([]*models.Freet, error) {
	return findMany(ctx, m.Freets, bson.M{}, newestFirst("dateModified"), documentToFreet)
}

func (m *MongoDB) GetFreetsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Freet, error) {
	return findMany(ctx, m.Freets, bson.M{"authorId": authorID.String()}, newestFirst("dateModified"), documentToFreet)
}

func (m *MongoDB) UpdateFreet(ctx context.Context, id uuid.UUID, content string) (*models.Freet, error) {
	var doc FreetDocument
	err := m.Freets.FindOneAndUpdate(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"content": content, "dateModified": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, freetNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update freet: %w", err)
	}
	return documentToFreet(&doc)
}

func (m *MongoDB) DeleteFreet(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, m.Freets, id, freetNotFound(id))
}

func (m *MongoDB) EnsureFreetIndexes(ctx context.Context) error {
	_, err := m.Freets.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "authorId", Value: 1}}},
		{Keys: bson.D{{Key: "dateModified", Value: -1}}},
	})
	return err
}
