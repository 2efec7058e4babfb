// Package store defines the persistence interfaces of the backend. All
// lookups are by opaque string identifier; no relational joins are needed.
// Implementations: mongo (production) and memory (tests, local runs).
package store

import (
	"context"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
)

// DocumentStore persists uploaded documents and their pipeline state.
type DocumentStore interface {
	Insert(ctx context.Context, doc *models.Document) error
	Get(ctx context.Context, documentID string) (*models.Document, error)
	// GetByFilename returns the document for an exact filename match, or
	// models.ErrNotFound. Used for the duplicate-upload check.
	GetByFilename(ctx context.Context, filename string) (*models.Document, error)
	Update(ctx context.Context, doc *models.Document) error
	Delete(ctx context.Context, documentID string) error
	List(ctx context.Context, limit int) ([]models.Document, error)
	CountByStatus(ctx context.Context, status models.DocumentStatus) (int64, error)
	CountByUploader(ctx context.Context, userID string) (int64, error)
}

// ArticleFilter narrows article listings.
type ArticleFilter struct {
	Status     models.ArticleStatus
	CategoryID string
}

// ArticleStore persists knowledge articles.
type ArticleStore interface {
	Insert(ctx context.Context, article *models.Article) error
	Get(ctx context.Context, articleID string) (*models.Article, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, articleID string) error
	// List returns articles matching the filter, newest update first.
	List(ctx context.Context, filter ArticleFilter, limit int) ([]models.Article, error)
	ListFavoritedBy(ctx context.Context, userID string, limit int) ([]models.Article, error)
	AddFavorite(ctx context.Context, articleID, userID string) error
	RemoveFavorite(ctx context.Context, articleID, userID string) error
	IncrementViewCount(ctx context.Context, articleID string) error
	CountByStatus(ctx context.Context, status models.ArticleStatus) (int64, error)
	CountByCreator(ctx context.Context, userID string) (int64, error)
}

// CategoryStore persists the category tree.
type CategoryStore interface {
	Insert(ctx context.Context, category *models.Category) error
	Get(ctx context.Context, categoryID string) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, categoryID string) error
	List(ctx context.Context) ([]models.Category, error)
	Count(ctx context.Context) (int64, error)
}

// UserStore persists users; identity itself comes from the session layer.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	Get(ctx context.Context, userID string) (*models.User, error)
	SetRecentlyViewed(ctx context.Context, userID string, articleIDs []string) error
}

// SessionStore resolves bearer tokens to login sessions.
type SessionStore interface {
	Insert(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}
