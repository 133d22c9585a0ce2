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

// PromptResponseDocument represents a prompt answer in MongoDB
type PromptResponseDocument struct {
	ID            string    `bson:"_id"`
	AuthorID      string    `bson:"authorId"`
	Content       string    `bson:"content"`
	DateResponded time.Time `bson:"dateResponded"`
	DateModified  time.Time `bson:"dateModified"`
}

func promptResponseToDocument(response *models.PromptResponse) *PromptResponseDocument {
	return &PromptResponseDocument{
		ID:            response.ID.String(),
		AuthorID:      response.AuthorID.String(),
		Content:       response.Content,
		DateResponded: response.DateResponded,
		DateModified:  response.DateModified,
	}
}

func documentToPromptResponse(doc *PromptResponseDocument) (*models.PromptResponse, error) {
	id, err := parseID("response", doc.ID)
	if err != nil {
		return nil, err
	}
	authorID, err := parseID("author", doc.AuthorID)
	if err != nil {
		return nil, err
	}
	return &models.PromptResponse{
		ID:            id,
		AuthorID:      authorID,
		Content:       doc.Content,
		DateResponded: doc.DateResponded,
		DateModified:  doc.DateModified,
	}, nil
}

func promptResponseNotFound(id uuid.UUID) *utils.AppError {
	return utils.NewNotFoundError("responseNotFound", fmt.Sprintf("Response with response ID %s does not exist.", id))
}

// CreatePromptResponse inserts an answer; the unique authorId index enforces one per author.
func (m *MongoDB) CreatePromptResponse(ctx context.Context, response *models.PromptResponse) error {
	return insertOne(ctx, m.PromptResponses, promptResponseToDocument(response),
		"You have already answered this prompt. You can update your response or delete it.")
}

func (m *MongoDB) GetPromptResponse(ctx context.Context, id uuid.UUID) (*models.PromptResponse, error) {
	doc, err := findOne[PromptResponseDocument](ctx, m.PromptResponses, bson.M{"_id": id.String()}, promptResponseNotFound(id))
	if err != nil {
		return nil, err
	}
	return documentToPromptResponse(doc)
}

func (m *MongoDB) GetAllPromptResponses(ctx context.Context) ([]*models.PromptResponse, error) {
	return findMany(ctx, m.PromptResponses, bson.M{}, newestFirst("dateModified"), documentToPromptResponse)
}

func (m *MongoDB) GetPromptResponsesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.PromptResponse, error) {
	return findMany(ctx, m.PromptResponses, bson.M{"authorId": authorID.String()}, newestFirst("dateModified"), documentToPromptResponse)
}

func (m *MongoDB) UpdatePromptResponse(ctx context.Context, id uuid.UUID, content string) (*models.PromptResponse, error) {
	var doc PromptResponseDocument
	err := m.PromptResponses.FindOneAndUpdate(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": bson.M{"content": content, "dateModified": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, promptResponseNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update prompt response: %w", err)
	}
	return documentToPromptResponse(&doc)
}

func (m *MongoDB) DeletePromptResponse(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, m.PromptResponses, id, promptResponseNotFound(id))
}

func (m *MongoDB) EnsurePromptResponseIndexes(ctx context.Context) error {
	_, err := m.PromptResponses.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "authorId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "dateModified", Value: -1}}},
	})
	return err
}
