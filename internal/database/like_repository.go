package database

import (
	"context"
	"fmt"
	"time"

	"fritter/internal/models"
	"fritter/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LikeDocument represents like data in MongoDB
type LikeDocument struct {
	ID          string    `bson:"_id"`
	AuthorID    string    `bson:"authorId"`
	ReferenceID string    `bson:"referenceId"`
	IsComment   bool      `bson:"isComment"`
	DateLiked   time.Time `bson:"dateLiked"`
}

func likeToDocument(like *models.Like) *LikeDocument {
	return &LikeDocument{
		ID:          like.ID.String(),
		AuthorID:    like.AuthorID.String(),
		ReferenceID: like.Reference.ID.String(),
		IsComment:   like.Reference.IsComment(),
		DateLiked:   like.DateLiked,
	}
}

func documentToLike(doc *LikeDocument) (*models.Like, error) {
	id, err := parseID("like", doc.ID)
	if err != nil {
		return nil, err
	}
	authorID, err := parseID("author", doc.AuthorID)
	if err != nil {
		return nil, err
	}
	referenceID, err := parseID("reference", doc.ReferenceID)
	if err != nil {
		return nil, err
	}
	return &models.Like{
		ID:        id,
		AuthorID:  authorID,
		Reference: models.ReferenceFromFlag(referenceID, doc.IsComment),
		DateLiked: doc.DateLiked,
	}, nil
}

func likeNotFound(referenceID uuid.UUID) *utils.AppError {
	return utils.NewNotFoundError("likeNotFound", fmt.Sprintf("Freet with freet ID %s has not been liked, yet.", referenceID))
}

// CreateLike inserts a like; the unique (authorId, referenceId) index turns a
// concurrent double-like into a DUPLICATE error instead of a second document.
func (m *MongoDB) CreateLike(ctx context.Context, like *models.Like) error {
	return insertOne(ctx, m.Likes, likeToDocument(like),
		fmt.Sprintf("Freet with freet ID %s has already been liked", like.Reference.ID))
}

func (m *MongoDB) GetLike(ctx context.Context, id uuid.UUID) (*models.Like, error) {
	doc, err := findOne[LikeDocument](ctx, m.Likes, bson.M{"_id": id.String()},
		utils.NewNotFoundError("likeNotFound", fmt.Sprintf("Like with ID %s does not exist.", id)))
	if err != nil {
		return nil, err
	}
	return documentToLike(doc)
}

func (m *MongoDB) GetAllLikes(ctx context.Context) ([]*models.Like, error) {
	return findMany(ctx, m.Likes, bson.M{}, newestFirst("dateLiked"), documentToLike)
}

func (m *MongoDB) GetLikesByReference(ctx context.Context, referenceID uuid.UUID) ([]*models.Like, error) {
	return findMany(ctx, m.Likes, bson.M{"referenceId": referenceID.String()}, newestFirst("dateLiked"), documentToLike)
}

func (m *MongoDB) GetLikesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Like, error) {
	return findMany(ctx, m.Likes, bson.M{"authorId": authorID.String()}, newestFirst("dateLiked"), documentToLike)
}

func (m *MongoDB) GetLikeByAuthorAndReference(ctx context.Context, authorID, referenceID uuid.UUID) (*models.Like, error) {
	doc, err := findOne[LikeDocument](ctx, m.Likes, bson.M{
		"authorId":    authorID.String(),
		"referenceId": referenceID.String(),
	}, likeNotFound(referenceID))
	if err != nil {
		return nil, err
	}
	return documentToLike(doc)
}

func (m *MongoDB) CountLikesByReference(ctx context.Context, referenceID uuid.UUID) (int64, error) {
	n, err := m.Likes.CountDocuments(ctx, bson.M{"referenceId": referenceID.String()})
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return n, nil
}

func (m *MongoDB) DeleteLike(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, m.Likes, id,
		utils.NewNotFoundError("likeNotFound", fmt.Sprintf("Like with ID %s does not exist.", id)))
}

func (m *MongoDB) EnsureLikeIndexes(ctx context.Context) error {
	_, err := m.Likes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "authorId", Value: 1},
				{Key: "referenceId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "referenceId", Value: 1}}},
	})
	return err
}
