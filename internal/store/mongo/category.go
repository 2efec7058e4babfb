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

var _ store.CategoryStore = (*CategoryStore)(nil)

type CategoryStore struct {
	coll *mongo.Collection
}

func NewCategoryStore(db *mongo.Database) *CategoryStore {
	return &CategoryStore{coll: db.Collection("categories")}
}

func (s *CategoryStore) Insert(ctx context.Context, category *models.Category) error {
	if _, err := s.coll.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (s *CategoryStore) Get(ctx context.Context, categoryID string) (*models.Category, error) {
	var category models.Category
	err := s.coll.FindOne(ctx, bson.M{"category_id": categoryID}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

func (s *CategoryStore) Update(ctx context.Context, category *models.Category) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"category_id": category.CategoryID}, category)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, categoryID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"category_id": categoryID})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryStore) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}
