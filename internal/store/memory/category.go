package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
)

var _ store.CategoryStore = (*CategoryStore)(nil)

type CategoryStore struct {
	mu         sync.RWMutex
	categories map[string]models.Category
}

func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		categories: make(map[string]models.Category),
	}
}

func (s *CategoryStore) Insert(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.CategoryID] = *category
	return nil
}

func (s *CategoryStore) Get(_ context.Context, categoryID string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	category, ok := s.categories[categoryID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &category, nil
}

func (s *CategoryStore) Update(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category.CategoryID]; !ok {
		return models.ErrNotFound
	}
	s.categories[category.CategoryID] = *category
	return nil
}

func (s *CategoryStore) Delete(_ context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[categoryID]; !ok {
		return models.ErrNotFound
	}
	delete(s.categories, categoryID)
	return nil
}

func (s *CategoryStore) List(_ context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]models.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Order != categories[j].Order {
			return categories[i].Order < categories[j].Order
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *CategoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.categories)), nil
}
