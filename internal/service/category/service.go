// Package category manages the category tree. Categories form a forest
// through parent IDs; updates walk the ancestor chain to keep the
// structure acyclic.
package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

type Service struct {
	categories store.CategoryStore
	log        logger.Logger
}

func NewService(categories store.CategoryStore, log logger.Logger) *Service {
	return &Service{
		categories: categories,
		log:        log.Named("category"),
	}
}

// Input is a new or updated category.
type Input struct {
	Name        string
	ParentID    string
	Description string
	Order       int
}

func (s *Service) Create(ctx context.Context, input Input, userID string) (*models.Category, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}
	if input.ParentID != "" {
		if _, err := s.categories.Get(ctx, input.ParentID); err != nil {
			return nil, fmt.Errorf("%w: parent category does not exist", models.ErrInvalidInput)
		}
	}

	now := time.Now().UTC()
	category := &models.Category{
		CategoryID:  models.NewCategoryID(),
		Name:        input.Name,
		ParentID:    input.ParentID,
		Description: input.Description,
		Order:       input.Order,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.categories.Insert(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return category, nil
}

func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) Update(ctx context.Context, categoryID string, input Input) (*models.Category, error) {
	category, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}
	if input.ParentID != "" {
		if err := s.checkCycle(ctx, categoryID, input.ParentID); err != nil {
			return nil, err
		}
	}

	category.Name = input.Name
	category.ParentID = input.ParentID
	category.Description = input.Description
	category.Order = input.Order
	category.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *Service) Delete(ctx context.Context, categoryID string) error {
	return s.categories.Delete(ctx, categoryID)
}

// checkCycle walks up from the proposed parent and rejects the update if
// the chain reaches the category being moved.
func (s *Service) checkCycle(ctx context.Context, categoryID, parentID string) error {
	current := parentID
	for current != "" {
		if current == categoryID {
			return fmt.Errorf("%w: category cannot be its own ancestor", models.ErrInvalidInput)
		}
		parent, err := s.categories.Get(ctx, current)
		if err != nil {
			return fmt.Errorf("%w: parent category does not exist", models.ErrInvalidInput)
		}
		current = parent.ParentID
	}
	return nil
}
