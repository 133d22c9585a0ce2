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
)

// CommentDocument represents comment data in MongoDB
type CommentDocument struct {
	ID            string    `bson:"_id"`
	AuthorID      string    `bson:"authorId"`
	ReferenceID   string    `bson:"referenceId"`
	IsComment     bool      `bson:"isComment"`
	Content       string    `bson:"content"`
	DateCommented time.Time `bson:"dateCommented"`
}

func commentToDocument(comment *models.Comment) *CommentDocument {
	return &CommentDocument{
		ID:            comment.ID.String(),
		AuthorID:      comment.AuthorID.String(),
		ReferenceID:   comment.Reference.ID.String(),
		IsComment:     comment.Reference.IsComment(),
		Content:       comment.Content,
		DateCommented: comment.DateCommented,
	}
}

// Helper function to convert CommentDocument to models.Comment
func documentToComment(doc *CommentDocument) (*models.Comment, error) {
	id, err := parseID("comment", doc.ID)
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
	return &models.Comment{
		ID:            id,
		AuthorID:      authorID,
		Reference:     models.ReferenceFromFlag(referenceID, doc.IsComment),
		Content:       doc.Content,
		DateCommented: doc.DateCommented,
	}, nil
}

func commentNotFound(id uuid.UUID) *utils.AppError {
	return utils.NewNotFoundError("commentNotFound", fmt.Sprintf("Comment with comment ID %s does not exist.", id))
}

func (m *MongoDB) CreateComment(ctx context.Context, comment *models.Comment) error {
	return insertOne(ctx, m.Comments, commentToDocument(comment), "Comment already exists")
}

// GetComment retrieves a comment by ID
func (m *MongoDB) GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	doc, err := findOne[CommentDocument](ctx, m.Comments, bson.M{"_id": id.String()}, commentNotFound(id))
	if err != nil {
		return nil, err
	}
	return documentToComment(doc)
}

func (m *MongoDB) GetAllComments(ctx context.Context) ([]*models.Comment, error) {
	return findMany(ctx, m.Comments, bson.M{}, newestFirst("dateCommented"), documentToComment)
}

// GetCommentsByReference retrieves the comments attached directly to a freet or comment
func (m *MongoDB) GetCommentsByReference(ctx context.Context, referenceID uuid.UUID) ([]*models.Comment, error) {
	return findMany(ctx, m.Comments, bson.M{"referenceId": referenceID.String()}, newestFirst("dateCommented"), documentToComment)
}

func (m *MongoDB) GetCommentsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Comment, error) {
	return findMany(ctx, m.Comments, bson.M{"authorId": authorID.String()}, newestFirst("dateCommented"), documentToComment)
}

func (m *MongoDB) CountCommentsByReference(ctx context.Context, referenceID uuid.UUID) (int64, error) {
	n, err := m.Comments.CountDocuments(ctx, bson.M{"referenceId": referenceID.String()})
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return n, nil
}

func (m *MongoDB) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, m.Comments, id, commentNotFound(id))
}

// EnsureCommentIndexes creates required indexes for the comments collection
func (m *MongoDB) EnsureCommentIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "referenceId", Value: 1},
				{Key: "dateCommented", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "authorId", Value: 1}},
		},
	}

	_, err := m.Comments.Indexes().CreateMany(ctx, indexes)
	return err
}
