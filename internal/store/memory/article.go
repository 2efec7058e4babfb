package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
)

var _ store.ArticleStore = (*ArticleStore)(nil)

type ArticleStore struct {
	mu       sync.RWMutex
	articles map[string]models.Article
}

func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		articles: make(map[string]models.Article),
	}
}

func (s *ArticleStore) Insert(_ context.Context, article *models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[article.ArticleID] = *article
	return nil
}

func (s *ArticleStore) Get(_ context.Context, articleID string) (*models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, ok := s.articles[articleID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &article, nil
}

func (s *ArticleStore) Update(_ context.Context, article *models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[article.ArticleID]; !ok {
		return models.ErrNotFound
	}
	s.articles[article.ArticleID] = *article
	return nil
}

func (s *ArticleStore) Delete(_ context.Context, articleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[articleID]; !ok {
		return models.ErrNotFound
	}
	delete(s.articles, articleID)
	return nil
}

func (s *ArticleStore) List(_ context.Context, filter store.ArticleFilter, limit int) ([]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	articles := make([]models.Article, 0, len(s.articles))
	for _, article := range s.articles {
		if filter.Status != "" && article.Status != filter.Status {
			continue
		}
		if filter.CategoryID != "" && article.CategoryID != filter.CategoryID {
			continue
		}
		articles = append(articles, article)
	}
	sortByUpdatedDesc(articles)
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

func (s *ArticleStore) ListFavoritedBy(_ context.Context, userID string, limit int) ([]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var articles []models.Article
	for _, article := range s.articles {
		if article.IsFavoritedBy(userID) {
			articles = append(articles, article)
		}
	}
	sortByUpdatedDesc(articles)
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	return articles, nil
}

func (s *ArticleStore) AddFavorite(_ context.Context, articleID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	article, ok := s.articles[articleID]
	if !ok {
		return models.ErrNotFound
	}
	if !article.IsFavoritedBy(userID) {
		article.FavoritedBy = append(article.FavoritedBy, userID)
		s.articles[articleID] = article
	}
	return nil
}

func (s *ArticleStore) RemoveFavorite(_ context.Context, articleID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	article, ok := s.articles[articleID]
	if !ok {
		return models.ErrNotFound
	}
	kept := article.FavoritedBy[:0]
	for _, id := range article.FavoritedBy {
		if id != userID {
			kept = append(kept, id)
		}
	}
	article.FavoritedBy = kept
	s.articles[articleID] = article
	return nil
}

func (s *ArticleStore) IncrementViewCount(_ context.Context, articleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	article, ok := s.articles[articleID]
	if !ok {
		return models.ErrNotFound
	}
	article.ViewCount++
	s.articles[articleID] = article
	return nil
}

func (s *ArticleStore) CountByStatus(_ context.Context, status models.ArticleStatus) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, article := range s.articles {
		if status == "" || article.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *ArticleStore) CountByCreator(_ context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, article := range s.articles {
		if article.CreatedBy == userID {
			n++
		}
	}
	return n, nil
}

func sortByUpdatedDesc(articles []models.Article) {
	sort.Slice(articles, func(i, j int) bool {
		return articles[i].UpdatedAt.After(articles[j].UpdatedAt)
	})
}
