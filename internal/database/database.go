// internal/database/database.go
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fritter/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client          *mongo.Client
	Users           *mongo.Collection
	Freets          *mongo.Collection
	Comments        *mongo.Collection
	Likes           *mongo.Collection
	PromptResponses *mongo.Collection
}

func NewMongoDB(ctx context.Context, uri, dbName string) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	slog.Info("connected to MongoDB", "database", dbName)

	db := client.Database(dbName)
	return &MongoDB{
		Client:          client,
		Users:           db.Collection("users"),
		Freets:          db.Collection("freets"),
		Comments:        db.Collection("comments"),
		Likes:           db.Collection("likes"),
		PromptResponses: db.Collection("prompt_responses"),
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the lookup indexes and the unique indexes that make
// duplicate likes, duplicate prompt responses and duplicate usernames impossible.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", m.EnsureUserIndexes},
		{"freets", m.EnsureFreetIndexes},
		{"comments", m.EnsureCommentIndexes},
		{"likes", m.EnsureLikeIndexes},
		{"prompt_responses", m.EnsurePromptResponseIndexes},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", step.name, err)
		}
	}
	return nil
}

// findMany runs a query and converts every document with convert.
func findMany[D any, M any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts *options.FindOptions, convert func(*D) (*M, error)) ([]*M, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query on %s failed: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}

	out := make([]*M, 0, len(docs))
	for i := range docs {
		model, err := convert(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, model)
	}
	return out, nil
}

// findOne decodes a single document, mapping a miss to a NOT_FOUND AppError.
func findOne[D any](ctx context.Context, coll *mongo.Collection, filter interface{}, notFound *utils.AppError) (*D, error) {
	var doc D
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", coll.Name(), err)
	}
	return &doc, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id uuid.UUID, notFound *utils.AppError) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", coll.Name(), err)
	}
	if result.DeletedCount == 0 {
		return notFound
	}
	return nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}, duplicate string) error {
	_, err := coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewDuplicateError(duplicate, err)
	}
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return nil
}

func newestFirst(field string) *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: field, Value: -1}, {Key: "_id", Value: 1}})
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID %q: %w", kind, raw, err)
	}
	return id, nil
}
