// Package article implements the knowledge-article workflows: CRUD,
// favorites, recently-viewed tracking and AI summary generation. Writes
// commit to the store first; index maintenance runs afterwards and its
// failures are logged, never surfaced.
package article

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/canusa-hub/knowledge-nexus/internal/genai"
	"github.com/canusa-hub/knowledge-nexus/internal/indexer"
	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/search"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
	"github.com/canusa-hub/knowledge-nexus/pkg/logger"
)

const (
	// recentlyViewedCap bounds the per-user recently-viewed list.
	recentlyViewedCap = 15
	// minSummaryInput skips AI summary generation for trivial content.
	minSummaryInput = 50
	summaryBudget   = 4000
)

type Service struct {
	articles store.ArticleStore
	users    store.UserStore
	indexer  *indexer.Indexer
	gen      genai.TextGenerator
	log      logger.Logger
}

// NewService builds the article service. indexer and gen may be nil;
// indexing and summary generation then become no-ops.
func NewService(articles store.ArticleStore, users store.UserStore, ix *indexer.Indexer, gen genai.TextGenerator, log logger.Logger) *Service {
	return &Service{
		articles: articles,
		users:    users,
		indexer:  ix,
		gen:      gen,
		log:      log.Named("article"),
	}
}

// CreateInput is a new article.
type CreateInput struct {
	Title            string
	Content          string
	Summary          string
	CategoryID       string
	Status           models.ArticleStatus
	Visibility       models.Visibility
	Tags             []string
	SourceDocumentID string
}

func (s *Service) Create(ctx context.Context, input CreateInput, userID string) (*models.Article, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrInvalidInput)
	}
	if input.Status == "" {
		input.Status = models.ArticleDraft
	}
	if input.Visibility == "" {
		input.Visibility = models.VisibilityAll
	}

	now := time.Now().UTC()
	article := &models.Article{
		ArticleID:        models.NewArticleID(),
		Title:            input.Title,
		Content:          input.Content,
		Summary:          input.Summary,
		CategoryID:       input.CategoryID,
		Status:           input.Status,
		Visibility:       input.Visibility,
		Tags:             input.Tags,
		SourceDocumentID: input.SourceDocumentID,
		FavoritedBy:      []string{},
		CreatedBy:        userID,
		UpdatedBy:        userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}

	if err := s.articles.Insert(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}

	if article.Status == models.ArticlePublished {
		s.reindex(ctx, article)
	}
	return article, nil
}

func (s *Service) Get(ctx context.Context, articleID string) (*models.Article, error) {
	return s.articles.Get(ctx, articleID)
}

func (s *Service) List(ctx context.Context, filter store.ArticleFilter, limit int) ([]models.Article, error) {
	return s.articles.List(ctx, filter, limit)
}

func (s *Service) Update(ctx context.Context, articleID string, update models.ArticleUpdate, userID string) (*models.Article, error) {
	article, err := s.articles.Get(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		article.Title = *update.Title
	}
	if update.Content != nil {
		article.Content = *update.Content
	}
	if update.Summary != nil {
		article.Summary = *update.Summary
	}
	if update.CategoryID != nil {
		article.CategoryID = *update.CategoryID
	}
	if update.Status != nil {
		article.Status = *update.Status
	}
	if update.Visibility != nil {
		article.Visibility = *update.Visibility
	}
	if update.Tags != nil {
		article.Tags = *update.Tags
	}
	article.UpdatedBy = userID
	article.UpdatedAt = time.Now().UTC()

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	if article.Status == models.ArticlePublished {
		s.reindex(ctx, article)
	} else {
		// Unpublished articles must not stay searchable.
		s.deindex(ctx, article.ArticleID)
	}
	return article, nil
}

func (s *Service) Delete(ctx context.Context, articleID string) error {
	if err := s.articles.Delete(ctx, articleID); err != nil {
		return err
	}
	s.deindex(ctx, articleID)
	return nil
}

// ToggleFavorite flips the user's favorite flag and reports the new state.
func (s *Service) ToggleFavorite(ctx context.Context, articleID, userID string) (bool, error) {
	article, err := s.articles.Get(ctx, articleID)
	if err != nil {
		return false, err
	}

	if article.IsFavoritedBy(userID) {
		if err := s.articles.RemoveFavorite(ctx, articleID, userID); err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}
	if err := s.articles.AddFavorite(ctx, articleID, userID); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

func (s *Service) Favorites(ctx context.Context, userID string, limit int) ([]models.Article, error) {
	return s.articles.ListFavoritedBy(ctx, userID, limit)
}

// MarkViewed bumps the view counter and moves the article to the front
// of the user's recently-viewed list.
func (s *Service) MarkViewed(ctx context.Context, articleID, userID string) error {
	if _, err := s.articles.Get(ctx, articleID); err != nil {
		return err
	}
	if err := s.articles.IncrementViewCount(ctx, articleID); err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}

	viewed := make([]string, 0, recentlyViewedCap)
	viewed = append(viewed, articleID)
	for _, id := range user.RecentlyViewed {
		if id == articleID {
			continue
		}
		viewed = append(viewed, id)
		if len(viewed) == recentlyViewedCap {
			break
		}
	}

	if err := s.users.SetRecentlyViewed(ctx, userID, viewed); err != nil {
		return fmt.Errorf("failed to update recently viewed: %w", err)
	}
	return nil
}

// RecentlyViewed resolves the user's recently-viewed IDs to articles,
// skipping ones that were deleted in the meantime.
func (s *Service) RecentlyViewed(ctx context.Context, userID string, limit int) ([]models.Article, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := user.RecentlyViewed
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	articles := make([]models.Article, 0, len(ids))
	for _, id := range ids {
		article, err := s.articles.Get(ctx, id)
		if err != nil {
			continue
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

// GenerateSummary produces a short German summary for the editor. It
// returns an empty string for trivial content and on any AI failure.
func (s *Service) GenerateSummary(ctx context.Context, content string) string {
	clean := search.StripHTML(content)
	if len(clean) < minSummaryInput {
		return ""
	}
	if s.gen == nil || !s.gen.Available() {
		return ""
	}

	runes := []rune(clean)
	if len(runes) > summaryBudget {
		clean = string(runes[:summaryBudget])
	}

	summary, err := s.gen.Summarize(ctx, clean)
	if err != nil {
		s.log.Warn("summary generation failed", logger.Error(err))
		return ""
	}

	summary = strings.TrimSpace(summary)
	summary = strings.TrimSpace(strings.TrimPrefix(summary, "Zusammenfassung:"))
	return summary
}

func (s *Service) reindex(ctx context.Context, article *models.Article) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexArticle(ctx, article); err != nil {
		s.log.Warn("failed to index article",
			logger.String("article_id", article.ArticleID),
			logger.Error(err))
	}
}

func (s *Service) deindex(ctx context.Context, articleID string) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.DeleteArticle(ctx, articleID); err != nil {
		s.log.Warn("failed to remove article from index",
			logger.String("article_id", articleID),
			logger.Error(err))
	}
}
