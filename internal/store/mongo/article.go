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

var _ store.ArticleStore = (*ArticleStore)(nil)

type ArticleStore struct {
	coll *mongo.Collection
}

func NewArticleStore(db *mongo.Database) *ArticleStore {
	return &ArticleStore{coll: db.Collection("articles")}
}

func (s *ArticleStore) Insert(ctx context.Context, article *models.Article) error {
	if _, err := s.coll.InsertOne(ctx, article); err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}
	return nil
}

func (s *ArticleStore) Get(ctx context.Context, articleID string) (*models.Article, error) {
	var article models.Article
	err := s.coll.FindOne(ctx, bson.M{"article_id": articleID}).Decode(&article)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	return &article, nil
}

func (s *ArticleStore) Update(ctx context.Context, article *models.Article) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"article_id": article.ArticleID}, article)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *ArticleStore) Delete(ctx context.Context, articleID string) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"article_id": articleID})
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *ArticleStore) List(ctx context.Context, filter store.ArticleFilter, limit int) ([]models.Article, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}
	return s.find(ctx, query, limit)
}

func (s *ArticleStore) ListFavoritedBy(ctx context.Context, userID string, limit int) ([]models.Article, error) {
	return s.find(ctx, bson.M{"favorited_by": userID}, limit)
}

func (s *ArticleStore) find(ctx context.Context, query bson.M, limit int) ([]models.Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	var articles []models.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}
	return articles, nil
}

func (s *ArticleStore) AddFavorite(ctx context.Context, articleID, userID string) error {
	return s.updateOne(ctx, articleID, bson.M{"$addToSet": bson.M{"favorited_by": userID}})
}

func (s *ArticleStore) RemoveFavorite(ctx context.Context, articleID, userID string) error {
	return s.updateOne(ctx, articleID, bson.M{"$pull": bson.M{"favorited_by": userID}})
}

func (s *ArticleStore) IncrementViewCount(ctx context.Context, articleID string) error {
	return s.updateOne(ctx, articleID, bson.M{"$inc": bson.M{"view_count": 1}})
}

func (s *ArticleStore) updateOne(ctx context.Context, articleID string, update bson.M) error {
	result, err := s.coll.UpdateOne(ctx, bson.M{"article_id": articleID}, update)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *ArticleStore) CountByStatus(ctx context.Context, status models.ArticleStatus) (int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return s.coll.CountDocuments(ctx, filter)
}

func (s *ArticleStore) CountByCreator(ctx context.Context, userID string) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"created_by": userID})
}
