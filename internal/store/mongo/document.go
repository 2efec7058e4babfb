package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
)

var _ store.DocumentStore = (*DocumentStore)(nil)

type DocumentStore struct {
	coll *mongo.Collection
}

func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{coll: db.Collection("documents")}
}

func (s *DocumentStore) Insert(ctx context.Context, doc *models.Document) error {
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, documentID string) (*models.Document, error) {
	return s.findOne(ctx, bson.M{"document_id": documentID})
}

func (s *DocumentStore) GetByFilename(ctx context.Context, filename string) (*models.Document, error) {
	return s.findOne(ctx, bson.M{"filename": filename})
}

func (s *DocumentStore) findOne(ctx context.Context, filter bson.M) (*models.Document, error) {
	var doc models.Document
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}
	return &doc, nil
}

func (s *DocumentStore) Update(ctx context.Context, doc *models.Document) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"document_id": doc.DocumentID}, doc)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, documentID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"document_id": documentID})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *DocumentStore) List(ctx context.Context, limit int) ([]models.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

func (s *DocumentStore) CountByStatus(ctx context.Context, status models.DocumentStatus) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.coll.CountDocuments(ctx, filter)
}

func (s *DocumentStore) CountByUploader(ctx context.Context, userID string) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"uploaded_by": userID})
}
