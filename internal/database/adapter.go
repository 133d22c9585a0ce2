package database

import (
	"context"

	"fritter/internal/models"

	"github.com/google/uuid"
)

// DBAdapter defines the common interface for database operations.
// MongoDB is the production backend; MemoryDB backs tests and local runs.
type DBAdapter interface {
	// Connection
	EnsureIndexes(ctx context.Context) error
	Close(ctx context.Context) error

	// User methods
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// Freet methods
	CreateFreet(ctx context.Context, freet *models.Freet) error
	GetFreet(ctx context.Context, id uuid.UUID) (*models.Freet, error)
	GetAllFreets(ctx context.Context) ([]*models.Freet, error)
	GetFreetsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Freet, error)
	UpdateFreet(ctx context.Context, id uuid.UUID, content string) (*models.Freet, error)
	DeleteFreet(ctx context.Context, id uuid.UUID) error

	// Comment methods
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetAllComments(ctx context.Context) ([]*models.Comment, error)
	GetCommentsByReference(ctx context.Context, referenceID uuid.UUID) ([]*models.Comment, error)
	GetCommentsByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Comment, error)
	CountCommentsByReference(ctx context.Context, referenceID uuid.UUID) (int64, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error

	// Like methods
	CreateLike(ctx context.Context, like *models.Like) error
	GetLike(ctx context.Context, id uuid.UUID) (*models.Like, error)
	GetAllLikes(ctx context.Context) ([]*models.Like, error)
	GetLikesByReference(ctx context.Context, referenceID uuid.UUID) ([]*models.Like, error)
	GetLikesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Like, error)
	GetLikeByAuthorAndReference(ctx context.Context, authorID, referenceID uuid.UUID) (*models.Like, error)
	CountLikesByReference(ctx context.Context, referenceID uuid.UUID) (int64, error)
	DeleteLike(ctx context.Context, id uuid.UUID) error

	// Prompt response methods
	CreatePromptResponse(ctx context.Context, response *models.PromptResponse) error
	GetPromptResponse(ctx context.Context, id uuid.UUID) (*models.PromptResponse, error)
	GetAllPromptResponses(ctx context.Context) ([]*models.PromptResponse, error)
	GetPromptResponsesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.PromptResponse, error)
	UpdatePromptResponse(ctx context.Context, id uuid.UUID, content string) (*models.PromptResponse, error)
	DeletePromptResponse(ctx context.Context, id uuid.UUID) error
}

var (
	_ DBAdapter = (*MongoDB)(nil)
	_ DBAdapter = (*MemoryDB)(nil)
)
