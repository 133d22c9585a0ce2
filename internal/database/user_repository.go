package database

import (
	"context"
	"time"

	"fritter/internal/models"
	"fritter/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserDocument represents the MongoDB schema for a user
type UserDocument struct {
	ID             string    `bson:"_id"`
	Username       string    `bson:"username"`
	HashedPassword string    `bson:"hashedPassword"`
	CreatedAt      time.Time `bson:"createdAt"`
}

func userToDocument(user *models.User) *UserDocument {
	return &UserDocument{
		ID:             user.ID.String(),
		Username:       user.Username,
		HashedPassword: user.HashedPassword,
		CreatedAt:      user.CreatedAt,
	}
}

func documentToUser(doc *UserDocument) (*models.User, error) {
	id, err := parseID("user", doc.ID)
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:             id,
		Username:       doc.Username,
		HashedPassword: doc.HashedPassword,
		CreatedAt:      doc.CreatedAt,
	}, nil
}

func userNotFound() *utils.AppError {
	return utils.NewNotFoundError("userNotFound", "User not found")
}

// SaveUser inserts a new user; the unique username index rejects duplicates.
func (m *MongoDB) SaveUser(ctx context.Context, user *models.User) error {
	return insertOne(ctx, m.Users, userToDocument(user), "Username already taken")
}

func (m *MongoDB) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	doc, err := findOne[UserDocument](ctx, m.Users, bson.M{"_id": id.String()}, userNotFound())
	if err != nil {
		return nil, err
	}
	return documentToUser(doc)
}

func (m *MongoDB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	doc, err := findOne[UserDocument](ctx, m.Users, bson.M{"username": username}, userNotFound())
	if err != nil {
		return nil, err
	}
	return documentToUser(doc)
}

func (m *MongoDB) EnsureUserIndexes(ctx context.Context) error {
	_, err := m.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
