// Package mongo implements the store interfaces on MongoDB. Entities are
// stored one collection per type, keyed by their opaque string identifiers.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/canusa-hub/knowledge-nexus/config"
)

// Connect opens a client against the configured MongoDB and pings it.
func Connect(ctx context.Context) (*mongo.Database, error) {
	cfg := config.GetMongoConfig()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client.Database(cfg.Database), nil
}

// EnsureIndexes creates the secondary indexes the queries rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	articleIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "article_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "favorited_by", Value: 1}}},
	}
	if _, err := db.Collection("articles").Indexes().CreateMany(ctx, articleIndexes); err != nil {
		return fmt.Errorf("failed to create article indexes: %w", err)
	}

	documentIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "document_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "filename", Value: 1}}},
	}
	if _, err := db.Collection("documents").Indexes().CreateMany(ctx, documentIndexes); err != nil {
		return fmt.Errorf("failed to create document indexes: %w", err)
	}

	sessionIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_token", Value: 1}}},
	}
	if _, err := db.Collection("user_sessions").Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	return nil
}
